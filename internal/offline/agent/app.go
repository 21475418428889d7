// Package agent wires the field agent: queue store, dispatcher, connectivity
// monitor and clock-in producer.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/solar_backoffice/internal/offline/clockin"
	"github.com/SscSPs/solar_backoffice/internal/offline/connectivity"
	"github.com/SscSPs/solar_backoffice/internal/offline/queue"
	"github.com/SscSPs/solar_backoffice/internal/offline/syncer"
	"github.com/SscSPs/solar_backoffice/internal/platform/config"
	"github.com/SscSPs/solar_backoffice/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App is a fully wired agent.
type App struct {
	Config     *config.AgentConfig
	Store      queue.Store
	Dispatcher *syncer.Dispatcher
	Monitor    *connectivity.Monitor
	Producer   *clockin.Producer
	Prober     connectivity.Prober
	// Location is the position attached to the next punch.
	Location *clockin.StaticLocation

	registry *prometheus.Registry
	metrics  *metrics.Sync
	logger   *slog.Logger
	unsub    func()

	runCtx context.Context
	mu     sync.Mutex
}

// New builds the agent from cfg. transport may be nil to use HTTP.
func New(ctx context.Context, cfg *config.AgentConfig, transport syncer.Transport, notify connectivity.Notifier, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	endpoints := syncer.NewEndpoints(cfg.SyncEndpoints)
	if err := endpoints.Validate(); err != nil {
		return nil, err
	}

	if transport == nil {
		transport = syncer.NewHTTPTransport(cfg.ServerURL+"/api/v1", cfg.APIToken, cfg.RequestTimeout)
	}

	a := &App{
		Config:   cfg,
		Store:    openStore(ctx, cfg, logger),
		Prober:   connectivity.NewHTTPProber(cfg.ServerURL, cfg.RequestTimeout),
		registry: prometheus.NewRegistry(),
		logger:   logger,
		runCtx:   ctx,
	}
	a.metrics = metrics.NewSync(a.registry)

	a.Monitor = connectivity.NewMonitor(false, cfg.SettleDelay, a.triggerSync, notify, logger)
	a.Dispatcher = syncer.NewDispatcher(a.Store, transport, a.Monitor, syncer.Config{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  cfg.RetryBaseDelay,
		Endpoints:  endpoints,
	}, logger, a.metrics)
	a.Dispatcher.OnEvicted = func(it queue.Item) {
		if notify != nil {
			notify.Notify(a.Monitor.IsOnline(), fmt.Sprintf("Could not sync %s %s after %d attempts, discarded", it.Entity, it.Action, it.Retries))
		}
	}
	a.Location = &clockin.StaticLocation{}
	var projectID *string
	if cfg.ProjectID != "" {
		projectID = &cfg.ProjectID
	}
	a.Producer = clockin.NewProducer(clockin.Options{
		Transport:       transport,
		Store:           a.Store,
		Online:          a.Monitor,
		Endpoints:       endpoints,
		ProjectID:       projectID,
		Logger:          logger,
		Locator:         a.Location,
		Site:            cfg.SiteLocation,
		GeofenceRadius:  cfg.GeofenceRadius,
		RequireGeofence: cfg.RequireGeofence,
	})

	a.unsub = a.Store.Subscribe(a.recordDepth)
	return a, nil
}

func openStore(ctx context.Context, cfg *config.AgentConfig, logger *slog.Logger) queue.Store {
	if !cfg.EnableOffline {
		logger.Info("Offline durability disabled by configuration")
		return queue.NoopStore{}
	}
	path := cfg.QueueDBPath
	return queue.NewLazyStore(ctx, func(ctx context.Context) (queue.Store, error) {
		return queue.OpenSQLiteStore(ctx, path)
	}, logger)
}

func (a *App) recordDepth(s queue.State) {
	depth := make(map[string]int, len(queue.AllEntities()))
	for _, e := range queue.AllEntities() {
		depth[string(e)] = s.ByEntity[e]
	}
	a.metrics.SetDepth(depth)
}

func (a *App) triggerSync() {
	a.mu.Lock()
	ctx := a.runCtx
	a.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if _, err := a.Dispatcher.SyncNow(ctx); err != nil {
		a.logger.Error("sync after reconnect failed", slog.String("error", err.Error()))
	}
}

// Refresh probes the server once and updates the monitor.
func (a *App) Refresh(ctx context.Context) bool {
	online := a.Prober.Probe(ctx)
	a.Monitor.SetOnline(online)
	return online
}

// Degraded reports whether durable storage failed to open.
func (a *App) Degraded(ctx context.Context) (bool, error) {
	lazy, ok := a.Store.(*queue.LazyStore)
	if !ok {
		return false, nil
	}
	if err := lazy.Wait(ctx); err != nil {
		return false, err
	}
	return lazy.Degraded()
}

// Run keeps probing connectivity and syncing periodically until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.mu.Lock()
	a.runCtx = ctx
	a.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.Monitor.Run(ctx, a.Prober, a.Config.ProbeInterval)
	}()
	go func() {
		defer wg.Done()
		a.Dispatcher.Run(ctx, a.Config.SyncInterval)
	}()

	var srv *http.Server
	if a.Config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
		srv = &http.Server{Addr: a.Config.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			a.logger.Info("Agent metrics listening", slog.String("addr", a.Config.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
	}

	<-ctx.Done()
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	wg.Wait()
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	a.Monitor.Stop()
	if a.unsub != nil {
		a.unsub()
	}
	return a.Store.Close()
}
