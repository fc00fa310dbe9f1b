package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vibeclip/internal/catalog"
	"github.com/MKhiriev/vibeclip/internal/config"
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/internal/tui"
	"github.com/MKhiriev/vibeclip/models"
)

var ErrNilConfig = errors.New("client config is nil")

type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	ui       UI

	logger *logger.Logger
}

// NewApp opens the configured store, loads the catalog, restores the last
// session and prepares the terminal UI.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log.WithComponent("store"))
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	content, err := catalog.Load(cfg.App.CatalogPath, log.WithComponent("catalog"))
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	services := service.NewClientServices(storages, content, log)

	ui, err := tui.New(services, tui.Options{
		SubmitDelay: cfg.App.SubmitDelay,
		Version:     cfg.App.Version,
		BuildInfo:   buildInfo,
	}, log.WithComponent("tui"))
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create ui: %w", err)
	}

	app := newApp(storages, services, ui, log)
	if err = app.restore(ctx); err != nil {
		_ = storages.Close()
		return nil, err
	}
	return app, nil
}

func newApp(storages *store.ClientStorages, services *service.ClientServices, ui UI, log *logger.Logger) *App {
	return &App{
		storages: storages,
		services: services,
		ui:       ui,
		logger:   log,
	}
}

func (a *App) restore(ctx context.Context) error {
	if err := a.services.SessionService.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if account, ok := a.services.SessionService.CurrentAccount(); ok {
		a.logger.Info().Str("func", "App.restore").Str("account_id", account.ID).Msg("resumed session")
	}
	return nil
}

// Run shows the UI until the user quits or the process is signalled, then
// closes the store.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	runErr := a.ui.Run(ctx)

	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.run").Msg("error closing storages")
		if runErr == nil {
			return fmt.Errorf("close storages: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("run ui: %w", runErr)
	}
	a.logger.Info().Str("func", "App.run").Msg("client stopped")
	return nil
}
