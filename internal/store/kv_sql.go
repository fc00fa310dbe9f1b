package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/migrations"
)

const (
	kvTable       = "kv_store"
	kvKeyColumn   = "key"
	kvValueColumn = "value"
)

// sqlKeyValueStore maps the key-value contract onto the kv_store table of a
// SQLite or PostgreSQL database.
type sqlKeyValueStore struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLKeyValueStore wraps an already migrated db.
func NewSQLKeyValueStore(db *DB, log *logger.Logger) KeyValueStore {
	var format sq.PlaceholderFormat = sq.Question
	if db.dialect == migrations.DialectPostgres {
		format = sq.Dollar
	}

	return &sqlKeyValueStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(format),
		logger:  log,
	}
}

func (s *sqlKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.builder.
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.withRetry(ctx, "get", func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqlKeyValueStore.Get").Str("key", key).Msg("error reading value")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return []byte(value), nil
}

func (s *sqlKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := s.builder.
		Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn).
		Values(key, string(value)).
		Suffix("ON CONFLICT (" + kvKeyColumn + ") DO UPDATE SET " + kvValueColumn + " = excluded." + kvValueColumn).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.withRetry(ctx, "set", func(ctx context.Context) error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).Str("func", "sqlKeyValueStore.Set").Str("key", key).Msg("error writing value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlKeyValueStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.builder.
		Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.withRetry(ctx, "delete", func(ctx context.Context) error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		s.logger.Err(err).Str("func", "sqlKeyValueStore.Delete").Str("key", key).Msg("error deleting value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlKeyValueStore) List(ctx context.Context) ([]string, error) {
	query, args, err := s.builder.
		Select(kvKeyColumn).
		From(kvTable).
		OrderBy(kvKeyColumn).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err = rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		keys = append(keys, k)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return keys, nil
}

func (s *sqlKeyValueStore) Close() error {
	return s.db.Close()
}
