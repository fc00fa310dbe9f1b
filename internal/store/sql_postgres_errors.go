package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [DB.withRetry] whether a failed key-value
// statement may be sent again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// retryableKVCodes are the failures where repeating a single kv_store
// statement can succeed: the connection dropped, the server was not ready yet
// or the statement lost a serialization conflict.
var retryableKVCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.CannotConnectNow:       {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
}

// PostgresErrorClassifier implements [ErrorClassificator] for the postgres
// kv_store backend.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports [Retryable] only for pgx errors whose code is in the
// transient set. Everything else, including non-driver errors, is final.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	if _, ok := retryableKVCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}
