package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/jonboulle/clockwork"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/disasterrecoveryau/sitegen/internal/build"
	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	"github.com/disasterrecoveryau/sitegen/internal/daemon"
	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
	"github.com/disasterrecoveryau/sitegen/internal/history"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
	"github.com/disasterrecoveryau/sitegen/internal/metrics"
	"github.com/disasterrecoveryau/sitegen/internal/storage"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Output directory for pages and sitemaps" default:""`
		Strict bool   `help:"Fail the build on any rejected page"`
	} `cmd:"" help:"Generate all pages and sitemaps from the catalogs"`

	Validate struct{} `cmd:"" help:"Load and validate catalogs and configuration without writing output"`

	Init struct {
		Force   bool   `help:"Overwrite existing files"`
		Catalog string `help:"Also write default catalog files to this directory"`
	} `cmd:"" help:"Initialize a configuration file (and optionally default catalogs)"`

	Watch struct {
		Output string `short:"o" help:"Output directory for pages and sitemaps" default:""`
	} `cmd:"" help:"Watch catalogs and rebuild on change"`

	History struct {
		Limit int `short:"n" help:"Number of builds to show" default:"10"`
	} `cmd:"" help:"Show recent build history"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	adapter := builderrors.NewCLIErrorAdapter(CLI.Verbose, logger)

	var err error
	switch kctx.Command() {
	case "build":
		err = runBuild(logger)
	case "validate":
		err = runValidate(logger)
	case "init":
		err = runInit(logger)
	case "watch":
		err = runWatch(logger)
	case "history":
		err = runHistory()
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}

	if err != nil {
		adapter.LogError(err)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}

func loadConfig() (*config.Config, error) {
	if _, statErr := os.Stat(CLI.Config); os.IsNotExist(statErr) {
		// No config file: defaults plus SITE_ORIGIN from the environment.
		cfg := config.Default()
		if origin := os.Getenv("SITE_ORIGIN"); origin != "" {
			cfg.SiteOrigin = origin
		}
		return cfg, cfg.Validate()
	}
	return config.Load(CLI.Config)
}

func runBuild(logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Build.Strict {
		cfg.Strict = true
	}
	if CLI.Build.Output != "" {
		cfg.ContentRoot = CLI.Build.Output
	}

	catalogs, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return err
	}
	sink, err := storage.NewFSSink(cfg.ContentRoot)
	if err != nil {
		return err
	}
	defer sink.Close()

	b := build.New(cfg, catalogs, sink, build.WithLogger(logger))
	report, runErr := b.Run(signalContext())
	recordHistory(cfg, logger, report, runErr)
	if runErr != nil {
		return runErr
	}

	printSummary(report)
	return nil
}

func runValidate(logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalogs, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return err
	}

	for kind, n := range catalogs.Counts() {
		logger.Debug("catalog loaded", "kind", string(kind), "entries", n)
	}

	m, err := manifest.Build(catalogs, cfg.SiteOrigin, cfg.Policy)
	if err != nil {
		return err
	}
	hash, err := m.Hash()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration and catalogs are valid: %d pages would be generated (manifest %s).\n",
		m.Len(), hash[:12])
	return nil
}

func runInit(logger *slog.Logger) error {
	if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
		return err
	}
	logger.Info("configuration written", "path", CLI.Config)

	if CLI.Init.Catalog != "" {
		if err := catalog.WriteDefaults(CLI.Init.Catalog, CLI.Init.Force); err != nil {
			return err
		}
		logger.Info("default catalogs written", "dir", CLI.Init.Catalog)
	}
	return nil
}

func runWatch(logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Watch.Output != "" {
		cfg.ContentRoot = CLI.Watch.Output
	}

	sink, err := storage.NewFSSink(cfg.ContentRoot)
	if err != nil {
		return err
	}
	defer sink.Close()

	var recorder *metrics.PrometheusRecorder
	if cfg.Watch.MetricsAddr != "" {
		recorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
	}

	buildOnce := func(ctx context.Context) error {
		// Config and catalogs reload on every build so edits take effect
		// without restarting the daemon.
		runCfg, err := loadConfig()
		if err != nil {
			return err
		}
		runCfg.ContentRoot = cfg.ContentRoot
		catalogs, err := catalog.Load(runCfg.CatalogDir)
		if err != nil {
			return err
		}
		opts := []build.Option{
			build.WithLogger(logger),
			build.WithClock(clockwork.NewRealClock()),
		}
		if recorder != nil {
			opts = append(opts, build.WithRecorder(recorder))
		}
		b := build.New(runCfg, catalogs, sink, opts...)
		report, runErr := b.Run(ctx)
		recordHistory(runCfg, logger, report, runErr)
		if runErr != nil {
			return runErr
		}
		printSummary(report)
		return nil
	}

	d := daemon.New(cfg, buildOnce, logger, recorder)
	d.ConfigPath = CLI.Config
	return d.Run(signalContext())
}

func runHistory() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return builderrors.ConfigRequired("history_db")
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), CLI.History.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No builds recorded yet.")
		return nil
	}
	for _, r := range records {
		fmt.Printf("%s  %-7s  pages=%-6d rejected=%-3d shards=%-2d  %dms  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Status, r.Pages, r.Rejected, r.Shards, r.DurationMS, r.ManifestHash[:minInt(12, len(r.ManifestHash))])
	}
	return nil
}

// recordHistory persists the build outcome when a history database is
// configured. History failures never fail the build.
func recordHistory(cfg *config.Config, logger *slog.Logger, report *build.Report, buildErr error) {
	if cfg.HistoryDB == "" {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		logger.Warn("history database unavailable", "error", err)
		return
	}
	defer store.Close()

	rec := history.Record{Status: "success"}
	if report != nil {
		rec.StartedAt = report.StartedAt
		rec.DurationMS = report.Duration.Milliseconds()
		rec.Pages = report.PagesWritten
		rec.Rejected = len(report.Rejected)
		rec.SitemapURLs = report.SitemapURLs
		rec.Shards = report.Shards
		rec.ManifestHash = report.ManifestHash
	}
	if buildErr != nil {
		rec.Status = "failed"
		rec.Error = buildErr.Error()
	}
	if _, err := store.Append(context.Background(), rec); err != nil {
		logger.Warn("history record failed", "error", err)
	}
}

func printSummary(report *build.Report) {
	fmt.Printf("Build complete: %d pages, %d sitemap URLs in %d shards (%s)\n",
		report.PagesWritten, report.SitemapURLs, report.Shards, report.Duration)

	rejected := report.RejectedByKind()
	kinds := make([]string, 0, len(report.Generated)+len(rejected))
	seen := make(map[manifest.PageKind]struct{}, len(report.Generated))
	for kind := range report.Generated {
		kinds = append(kinds, string(kind))
		seen[kind] = struct{}{}
	}
	for kind := range rejected {
		if _, ok := seen[kind]; !ok {
			kinds = append(kinds, string(kind))
		}
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %-12s %d generated, %d rejected\n",
			kind, report.Generated[manifest.PageKind(kind)], rejected[manifest.PageKind(kind)])
	}

	for _, r := range report.Rejected {
		fmt.Printf("  rejected %s: %s\n", r.URL, r.Reason)
	}
}

func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
