// Package daemon implements watch mode: rebuild on catalog file changes,
// optional interval rebuilds, and an optional Prometheus metrics endpoint.
package daemon

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/disasterrecoveryau/sitegen/internal/config"
	"github.com/disasterrecoveryau/sitegen/internal/metrics"
)

// BuildFunc runs one build. The daemon serialises invocations.
type BuildFunc func(ctx context.Context) error

// Daemon watches the catalog directory and re-runs builds.
type Daemon struct {
	cfg     *config.Config
	build   BuildFunc
	logger  *slog.Logger
	metrics *metrics.PrometheusRecorder

	// ConfigPath, when set, is also watched; edits to the configuration
	// file trigger a rebuild. Watch-mode settings themselves still require
	// a restart.
	ConfigPath string

	debouncer *Debouncer
}

// New constructs a daemon. The metrics recorder may be nil when no metrics
// endpoint is configured.
func New(cfg *config.Config, build BuildFunc, logger *slog.Logger, rec *metrics.PrometheusRecorder) *Daemon {
	quiet := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	return &Daemon{
		cfg:       cfg,
		build:     build,
		logger:    logger,
		metrics:   rec,
		debouncer: NewDebouncer(quiet),
	}
}

// Run blocks until ctx is canceled. It performs one initial build, then
// rebuilds on catalog changes and on the configured interval.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.runBuild(ctx, "startup"); err != nil {
		return err
	}

	watcher, err := d.startWatcher(ctx)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
	}

	scheduler, err := d.startScheduler()
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	if d.cfg.Watch.MetricsAddr != "" && d.metrics != nil {
		go d.serveMetrics(ctx)
	}

	go d.debouncer.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("watch mode stopping")
			return nil
		case <-d.debouncer.Triggers():
			// Build failures in watch mode are logged, not fatal: the next
			// catalog edit gets another chance.
			if err := d.runBuild(ctx, "catalog change"); err != nil {
				d.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

func (d *Daemon) runBuild(ctx context.Context, reason string) error {
	d.logger.Info("build triggered", "reason", reason)
	return d.build(ctx)
}

func (d *Daemon) startWatcher(ctx context.Context) (*fsnotify.Watcher, error) {
	dir := d.cfg.CatalogDir
	if dir == "" && d.ConfigPath == "" {
		d.logger.Warn("no catalog directory configured, file watching disabled")
		return nil, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	if d.ConfigPath != "" {
		// Watch the parent directory; editors replace files on save, which
		// a direct file watch misses.
		if err := watcher.Add(filepath.Dir(d.ConfigPath)); err != nil {
			d.logger.Warn("config file watch unavailable", "path", d.ConfigPath, "error", err)
		}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isCatalogEvent(ev) && !d.isConfigEvent(ev) {
					continue
				}
				d.logger.Debug("catalog event", "op", ev.Op.String(), "file", ev.Name)
				d.debouncer.Request()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Warn("watcher error", "error", err)
			}
		}
	}()

	d.logger.Info("watching catalog directory", "dir", dir)
	return watcher, nil
}

func isCatalogEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return false
	}
	name := strings.ToLower(ev.Name)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func (d *Daemon) isConfigEvent(ev fsnotify.Event) bool {
	if d.ConfigPath == "" {
		return false
	}
	return filepath.Base(ev.Name) == filepath.Base(d.ConfigPath)
}

func (d *Daemon) startScheduler() (gocron.Scheduler, error) {
	if d.cfg.Watch.Interval == "" {
		return nil, nil
	}
	interval, err := time.ParseDuration(d.cfg.Watch.Interval)
	if err != nil {
		return nil, err
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.debouncer.Request() }),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	scheduler.Start()
	d.logger.Info("interval rebuilds scheduled", "interval", interval)
	return scheduler, nil
}

func (d *Daemon) serveMetrics(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.metrics.HTTPHandler())
	srv := &http.Server{Addr: d.cfg.Watch.MetricsAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	d.logger.Info("metrics endpoint listening", "addr", d.cfg.Watch.MetricsAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		d.logger.Error("metrics server failed", "error", err)
	}
}
