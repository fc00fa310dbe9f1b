package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/migrations"
)

func newMockPostgresKV(t *testing.T) (KeyValueStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := &DB{
		DB:                 sqlDB,
		dialect:            migrations.DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
	return NewSQLKeyValueStore(db, logger.Nop()), mock
}

func pgErr(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestSQLKeyValueStore_Get(t *testing.T) {
	t.Run("value found", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
			WithArgs(KeyAccounts).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("[]"))

		v, err := kv.Get(context.Background(), KeyAccounts)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(v))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs("absent").
			WillReturnError(sql.ErrNoRows)

		v, err := kv.Get(context.Background(), "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("driver error", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WillReturnError(errors.New("boom"))

		_, err := kv.Get(context.Background(), "k")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestSQLKeyValueStore_Set(t *testing.T) {
	t.Run("upsert", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectExec(`INSERT INTO kv_store \(key,value\) VALUES \(\$1,\$2\) ON CONFLICT \(key\) DO UPDATE SET value = excluded.value`).
			WithArgs("k", "v").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries once on retryable error", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnError(pgErr(pgerrcode.SerializationFailure))
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, kv.Set(context.Background(), "k", []byte("v")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up after second retryable error", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnError(pgErr(pgerrcode.DeadlockDetected))
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnError(pgErr(pgerrcode.DeadlockDetected))

		err := kv.Set(context.Background(), "k", []byte("v"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no retry on non-retryable error", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectExec(`INSERT INTO kv_store`).
			WillReturnError(pgErr(pgerrcode.UndefinedTable))

		err := kv.Set(context.Background(), "k", []byte("v"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLKeyValueStore_Delete(t *testing.T) {
	kv, mock := newMockPostgresKV(t)
	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs(KeyCurrentSession).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, kv.Delete(context.Background(), KeyCurrentSession))

	mock.ExpectExec(`DELETE FROM kv_store`).WillReturnError(errors.New("boom"))
	assert.ErrorIs(t, kv.Delete(context.Background(), "k"), ErrExecutingStatement)
}

func TestSQLKeyValueStore_List(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectQuery(`SELECT key FROM kv_store ORDER BY key`).
			WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("accounts").AddRow("likes_1"))

		keys, err := kv.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"accounts", "likes_1"}, keys)
	})

	t.Run("query error", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectQuery(`SELECT key FROM kv_store`).WillReturnError(errors.New("boom"))

		_, err := kv.List(context.Background())
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("row error", func(t *testing.T) {
		kv, mock := newMockPostgresKV(t)
		mock.ExpectQuery(`SELECT key FROM kv_store`).
			WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("a").RowError(0, errors.New("broken row")))

		_, err := kv.List(context.Background())
		assert.ErrorIs(t, err, ErrScanningRows)
	})
}

func TestSQLKeyValueStore_SQLiteUsesQuestionPlaceholders(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := &DB{DB: sqlDB, dialect: migrations.DialectSQLite, logger: logger.Nop()}
	kv := NewSQLKeyValueStore(db, logger.Nop())

	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \?`).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))

	v, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))

	// sqlite has no classifier, so errors are never retried
	mock.ExpectExec(`INSERT INTO kv_store`).WillReturnError(pgErr(pgerrcode.SerializationFailure))
	assert.Error(t, kv.Set(context.Background(), "k", []byte("v")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLKeyValueStore_PostgresUsesDollarPlaceholders(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := &DB{DB: sqlDB, dialect: migrations.DialectPostgres, logger: logger.Nop()}
	kv := NewSQLKeyValueStore(db, logger.Nop())

	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))
	mock.ExpectExec(`INSERT INTO kv_store \(key,value\) VALUES \(\$1,\$2\)`).
		WithArgs("k", "v2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	v, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))
	require.NoError(t, kv.Set(context.Background(), "k", []byte("v2")))
	require.NoError(t, kv.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
