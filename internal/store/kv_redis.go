package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/vibeclip/internal/logger"
)

// redisNamespace separates vibeclip keys from anything else in the database.
const redisNamespace = "vibeclip:"

// redisCommander is the subset of *redis.Client used by the store.
type redisCommander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Close() error
}

type redisKeyValueStore struct {
	client redisCommander
	logger *logger.Logger
}

// NewConnectRedis parses a redis:// or rediss:// URL and pings the server.
func NewConnectRedis(ctx context.Context, dsn string, log *logger.Logger) (KeyValueStore, error) {
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("invalid redis url")
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedDSN, err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisCommand, err)
	}
	log.Info().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return newRedisKeyValueStore(client, log), nil
}

func newRedisKeyValueStore(client redisCommander, log *logger.Logger) *redisKeyValueStore {
	return &redisKeyValueStore{client: client, logger: log}
}

func (r *redisKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, redisNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %w", ErrRedisCommand, key, err)
	}
	return value, nil
}

func (r *redisKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisNamespace+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %w", ErrRedisCommand, key, err)
	}
	return nil
}

func (r *redisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisNamespace+key).Err(); err != nil {
		return fmt.Errorf("%w: del %q: %w", ErrRedisCommand, key, err)
	}
	return nil
}

func (r *redisKeyValueStore) List(ctx context.Context) ([]string, error) {
	keys, err := r.client.Keys(ctx, redisNamespace+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("%w: keys: %w", ErrRedisCommand, err)
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, redisNamespace))
	}
	return out, nil
}

func (r *redisKeyValueStore) Close() error {
	return r.client.Close()
}
