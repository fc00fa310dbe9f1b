package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/vibeclip/internal/config"
	"github.com/MKhiriev/vibeclip/internal/logger"
)

// ClientStorages groups the repositories used by the service layer. They all
// share one [KeyValueStore].
type ClientStorages struct {
	KeyValueStore KeyValueStore
	Accounts      AccountDirectory
	Interactions  InteractionRepository
}

// NewClientStorages opens the backend selected by cfg.DSN, applies
// cfg.KeyPrefix and builds the repositories on top of it.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("dsn_kind", backendKind(cfg.DSN)).Msg("creating new storages...")

	kv, err := NewKeyValueStore(ctx, cfg.DSN, log)
	if err != nil {
		return nil, err
	}

	return NewClientStoragesFromKV(WithKeyPrefix(kv, cfg.KeyPrefix), log), nil
}

// NewClientStoragesFromKV builds the repositories on an existing store.
func NewClientStoragesFromKV(kv KeyValueStore, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		KeyValueStore: kv,
		Accounts:      NewAccountDirectory(kv, log.WithComponent("account_directory")),
		Interactions:  NewInteractionRepository(kv, log.WithComponent("interaction_repository")),
	}
}

func (s *ClientStorages) Close() error {
	return s.KeyValueStore.Close()
}

// NewKeyValueStore opens the backend matching dsn:
//   - ":memory:" or "memory": in-process map;
//   - "*.json": JSON file;
//   - "postgres://" or "postgresql://": PostgreSQL;
//   - "redis://" or "rediss://": Redis;
//   - anything else: SQLite database file.
func NewKeyValueStore(ctx context.Context, dsn string, log *logger.Logger) (KeyValueStore, error) {
	switch backendKind(dsn) {
	case "memory":
		return NewMemoryKeyValueStore(), nil
	case "json":
		return NewFileKeyValueStore(dsn, log)
	case "redis":
		return NewConnectRedis(ctx, dsn, log)
	case "postgres":
		db, err := NewConnectPostgres(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return migratedSQLStore(db, log)
	case "sqlite":
		db, err := NewConnectSQLite(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return migratedSQLStore(db, log)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
}

func migratedSQLStore(db *DB, log *logger.Logger) (KeyValueStore, error) {
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return NewSQLKeyValueStore(db, log), nil
}

func backendKind(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case lower == "memory" || lower == sqliteMemoryDSN:
		return "memory"
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(lower, "redis://"), strings.HasPrefix(lower, "rediss://"):
		return "redis"
	case strings.Contains(lower, "://"):
		return "unknown"
	case strings.HasSuffix(lower, ".json"):
		return "json"
	case dsn == "":
		return "unknown"
	}
	return "sqlite"
}
