package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/migrations"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB wraps a *sql.DB together with its goose dialect and an optional error
// classifier.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs fn and repeats it once when the classifier reports the
// failure as retryable.
func (db *DB) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil || db.errorClassificator == nil {
		return err
	}

	if db.errorClassificator.Classify(err) != Retryable {
		return err
	}

	db.logger.Warn().Err(err).Str("op", op).Msg("retryable database error, retrying once")
	return fn(ctx)
}
