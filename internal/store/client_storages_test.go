package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vibeclip/internal/config"
	"github.com/MKhiriev/vibeclip/internal/logger"
)

func TestBackendKind(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{":memory:", "memory"},
		{"memory", "memory"},
		{"data/vibeclip.json", "json"},
		{"vibeclip.db", "sqlite"},
		{"/var/lib/vibeclip/state", "sqlite"},
		{"postgres://u:p@localhost/db", "postgres"},
		{"POSTGRESQL://u:p@localhost/db", "postgres"},
		{"redis://localhost:6379/0", "redis"},
		{"rediss://localhost:6380/0", "redis"},
		{"mysql://localhost/db", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, backendKind(tt.dsn))
		})
	}
}

func TestNewKeyValueStore_Unsupported(t *testing.T) {
	_, err := NewKeyValueStore(context.Background(), "mysql://localhost/db", logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestNewClientStorages_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vibeclip.db")

	storages, err := NewClientStorages(ctx, config.ClientStorage{DSN: path}, logger.Nop())
	require.NoError(t, err)

	a := testAccount("a", "a@x.io")
	require.NoError(t, storages.Accounts.UpsertAccount(ctx, a))
	require.NoError(t, storages.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	reopened, err := NewClientStorages(ctx, config.ClientStorage{DSN: path}, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Accounts.FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestNewClientStorages_JSONFileWithPrefix(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vibeclip.json")

	storages, err := NewClientStorages(ctx, config.ClientStorage{DSN: path, KeyPrefix: "p1_"}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	require.NoError(t, storages.Interactions.SaveLikedVideoIDs(ctx, "u1", []string{"v1"}))

	raw, err := NewFileKeyValueStore(path, logger.Nop())
	require.NoError(t, err)
	keys, err := raw.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1_likes_u1"}, keys)
}

func TestNewClientStoragesFromKV_SharesStore(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStore()
	storages := NewClientStoragesFromKV(kv, logger.Nop())

	require.NoError(t, storages.Accounts.UpsertAccount(ctx, testAccount("a", "a@x.io")))
	require.NoError(t, storages.Interactions.SaveLikedVideoIDs(ctx, "a", []string{"v1"}))

	keys, err := kv.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyAccounts, "likes_a"}, keys)
}
