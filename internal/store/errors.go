package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrAccountNotFound is returned when no stored account has the requested email.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEncodingValue is returned when a value cannot be serialised before
	// being written to the store.
	ErrEncodingValue = errors.New("error encoding value")

	ErrUnsupportedDSN = errors.New("unsupported storage DSN")
)

// Low-level storage operation errors. These wrap the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan kv row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan kv rows")

	ErrRedisCommand = errors.New("redis command failed")

	ErrFileStorage = errors.New("file storage error")
)
