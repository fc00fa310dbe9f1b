package store

import (
	"context"
	"strings"
)

// prefixedKeyValueStore lets several profiles share one backend.
type prefixedKeyValueStore struct {
	KeyValueStore
	prefix string
}

// WithKeyPrefix returns kv unchanged when prefix is empty.
func WithKeyPrefix(kv KeyValueStore, prefix string) KeyValueStore {
	if prefix == "" {
		return kv
	}
	return &prefixedKeyValueStore{KeyValueStore: kv, prefix: prefix}
}

func (p *prefixedKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.KeyValueStore.Get(ctx, p.prefix+key)
}

func (p *prefixedKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	return p.KeyValueStore.Set(ctx, p.prefix+key, value)
}

func (p *prefixedKeyValueStore) Delete(ctx context.Context, key string) error {
	return p.KeyValueStore.Delete(ctx, p.prefix+key)
}

func (p *prefixedKeyValueStore) List(ctx context.Context) ([]string, error) {
	keys, err := p.KeyValueStore.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if rest, ok := strings.CutPrefix(k, p.prefix); ok {
			out = append(out, rest)
		}
	}
	return out, nil
}
