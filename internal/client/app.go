package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/storyshare/storyshare/internal/adapter"
	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/httpcache"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/internal/notify"
	"github.com/storyshare/storyshare/internal/service"
	"github.com/storyshare/storyshare/internal/store"
	"github.com/storyshare/storyshare/internal/workers"
)

const appName = "StoryShare"

// App owns every long-lived component of the client process.
type App struct {
	Config   config.ClientConfig
	Logger   *logger.Logger
	Storages *store.Storages
	Adapter  adapter.StoryAPI
	Services *service.Services

	cache   *httpcache.Store
	workers *workers.Workers
}

// NewApp assembles the application from configuration. Responses from the
// remote service travel through the offline cache transport, so recently
// seen content stays available without connectivity.
func NewApp(overrides config.Overrides) (*App, error) {
	cfg, err := config.GetClientConfig(overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewClientLogger("storyshare")

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	cache, err := httpcache.OpenStore(cfg.Cache, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("open response cache: %w", err)
	}

	apiURL, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		storages.Close()
		cache.Close()
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	transport := httpcache.NewTransport(cache, apiURL.Host, nil, log)
	serverAdapter := adapter.NewHTTPStoryAPI(cfg.API, transport, log)
	notifier := notify.NewDesktopNotifier(appName, log)

	services := service.NewServices(storages, serverAdapter, notifier, cfg.Workers, log)

	// The watcher probes more often than the drain ticker fires, so a
	// restored connection is noticed well before the next scheduled pass.
	probeInterval := cfg.Workers.SyncInterval / 10
	if probeInterval < 5*time.Second {
		probeInterval = 5 * time.Second
	}
	watcher := workers.NewConnectivityWatcher(serverAdapter, services.SyncJob, probeInterval, log)

	return &App{
		Config:   *cfg,
		Logger:   log,
		Storages: storages,
		Adapter:  serverAdapter,
		Services: services,
		cache:    cache,
		workers:  workers.NewWorkers(watcher),
	}, nil
}

// Bootstrap restores the persisted session onto the adapter and drains any
// submissions left queued from a previous run. Call it before executing a
// command.
func (a *App) Bootstrap(ctx context.Context) error {
	if _, err := a.Services.AuthService.RestoreSession(ctx); err != nil {
		if !errors.Is(err, service.ErrNotAuthenticated) {
			return fmt.Errorf("restore session: %w", err)
		}
	}

	pending, err := a.Services.SyncService.Pending(ctx)
	if err != nil {
		return fmt.Errorf("inspect pending queue: %w", err)
	}
	if len(pending) > 0 {
		a.Logger.Info().Int("pending", len(pending)).Msg("draining submissions queued before startup")
		if _, err := a.Services.SyncService.Drain(ctx); err != nil {
			a.Logger.Err(err).Msg("startup drain failed")
		}
	}

	return nil
}

// Run starts the background reconciliation job and the connectivity watcher
// and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	a.Services.SyncJob.Start(ctx, a.Config.Workers.SyncInterval)
	defer a.Services.SyncJob.Stop()

	a.workers.Run(ctx)
	return nil
}

// Close releases the local store and the response cache.
func (a *App) Close() error {
	var errs []error
	if err := a.Storages.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.cache.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
