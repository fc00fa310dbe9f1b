package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/vibeclip/internal/catalog"
	"github.com/MKhiriev/vibeclip/internal/config"
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUI struct {
	err   error
	calls int
}

func (f *fakeUI) Run(context.Context) error {
	f.calls++
	return f.err
}

func testConfig(dsn string) *config.ClientConfig {
	return &config.ClientConfig{
		App:     config.ClientApp{SubmitDelay: time.Millisecond},
		Storage: config.ClientStorage{DSN: dsn},
	}
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()

	t.Run("nil config", func(t *testing.T) {
		_, err := NewApp(ctx, nil, models.AppBuildInfo{}, log)
		assert.ErrorIs(t, err, ErrNilConfig)
	})

	t.Run("unsupported dsn", func(t *testing.T) {
		_, err := NewApp(ctx, testConfig("ftp://nowhere"), models.AppBuildInfo{}, log)
		assert.ErrorIs(t, err, store.ErrUnsupportedDSN)
	})

	t.Run("missing catalog", func(t *testing.T) {
		cfg := testConfig(":memory:")
		cfg.App.CatalogPath = filepath.Join(t.TempDir(), "missing.json")
		_, err := NewApp(ctx, cfg, models.AppBuildInfo{}, log)
		assert.ErrorIs(t, err, catalog.ErrReadingCatalog)
	})

	t.Run("memory store", func(t *testing.T) {
		app, err := NewApp(ctx, testConfig(":memory:"), models.NewAppBuildInfo("1", "", ""), log)
		require.NoError(t, err)
		require.NotNil(t, app.ui)
		assert.Len(t, app.services.FeedService.Videos(), len(catalog.Demo().Videos()))
		require.NoError(t, app.storages.Close())
	})
}

func TestNewApp_RestoresSessionFromDisk(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()
	dsn := filepath.Join(t.TempDir(), "state.json")

	first, err := NewApp(ctx, testConfig(dsn), models.AppBuildInfo{}, log)
	require.NoError(t, err)
	_, err = first.services.SessionService.Register(ctx, models.RegistrationForm{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Age:      "30",
	})
	require.NoError(t, err)
	require.NoError(t, first.storages.Close())

	second, err := NewApp(ctx, testConfig(dsn), models.AppBuildInfo{}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.storages.Close() })

	account, ok := second.services.SessionService.CurrentAccount()
	require.True(t, ok)
	assert.Equal(t, "alice", account.Username)
}

func TestApp_Run(t *testing.T) {
	log := logger.Nop()

	newTestApp := func(ui UI) *App {
		storages := store.NewClientStoragesFromKV(store.NewMemoryKeyValueStore(), log)
		services := service.NewClientServices(storages, catalog.Demo(), log)
		return newApp(storages, services, ui, log)
	}

	t.Run("ui ok", func(t *testing.T) {
		ui := &fakeUI{}
		require.NoError(t, newTestApp(ui).run(context.Background()))
		assert.Equal(t, 1, ui.calls)
	})

	t.Run("ui error", func(t *testing.T) {
		boom := errors.New("boom")
		err := newTestApp(&fakeUI{err: boom}).run(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}
