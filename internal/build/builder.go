// Package build orchestrates a full generation run: manifest enumeration,
// parallel page assembly, lint, sitemap emission, and artifact writes
// through a storage sink. A run either completes its whole output or
// returns an error with nothing partially trusted; the sitemap is always
// derived from exactly the set of pages that were emitted.
package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	"github.com/disasterrecoveryau/sitegen/internal/content"
	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
	"github.com/disasterrecoveryau/sitegen/internal/lint"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
	"github.com/disasterrecoveryau/sitegen/internal/metrics"
	"github.com/disasterrecoveryau/sitegen/internal/sitemap"
	"github.com/disasterrecoveryau/sitegen/internal/storage"
)

// Builder runs generation builds against one config and catalog set.
type Builder struct {
	cfg      *config.Config
	catalogs *catalog.Catalogs
	sink     storage.Sink

	clock       clockwork.Clock
	recorder    metrics.Recorder
	logger      *slog.Logger
	concurrency int
}

// Option customises a Builder.
type Option func(*Builder)

// WithClock injects the clock used for sitemap lastmod stamps and duration
// measurement. Tests use a fake clock for byte-identical output.
func WithClock(c clockwork.Clock) Option {
	return func(b *Builder) { b.clock = c }
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithLogger injects the build logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithConcurrency bounds parallel page assembly.
func WithConcurrency(n int) Option {
	return func(b *Builder) { b.concurrency = n }
}

// New constructs a Builder with noop metrics and the real clock by default.
func New(cfg *config.Config, catalogs *catalog.Catalogs, sink storage.Sink, opts ...Option) *Builder {
	b := &Builder{
		cfg:         cfg,
		catalogs:    catalogs,
		sink:        sink,
		clock:       clockwork.NewRealClock(),
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Rejection is one page dropped from a non-strict build.
type Rejection struct {
	URL    string
	Kind   manifest.PageKind
	Reason string
}

// Report summarises one completed build.
type Report struct {
	StartedAt    time.Time
	Duration     time.Duration
	PagesWritten int
	Generated    map[manifest.PageKind]int
	Rejected     []Rejection
	SitemapURLs  int
	Shards       int
	ManifestHash string
	Counts       map[catalog.Kind]int
}

// RejectedByKind groups the build's rejections by page kind.
func (r *Report) RejectedByKind() map[manifest.PageKind]int {
	if len(r.Rejected) == 0 {
		return nil
	}
	out := make(map[manifest.PageKind]int, len(r.Rejected))
	for _, rej := range r.Rejected {
		out[rej.Kind]++
	}
	return out
}

type artifact struct {
	entry manifest.Entry
	path  string
	data  []byte
}

// Run executes one full build. Page-level template and lint failures reject
// the page in normal mode and fail the build in strict mode; catalog,
// schema, manifest, and write failures always fail the build.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	start := b.clock.Now()

	m, err := b.buildManifest()
	if err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	artifacts, rejections, err := b.assemblePages(ctx, m)
	if err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	// The sitemap is derived from the post-rejection manifest so it can
	// never reference a page that was not emitted.
	if len(rejections) > 0 {
		dropped := make(map[string]struct{}, len(rejections))
		for _, r := range rejections {
			dropped[r.URL] = struct{}{}
		}
		m = m.Remove(dropped)
	}

	report, err := b.emit(ctx, m, artifacts)
	if err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}

	report.StartedAt = start
	report.Duration = b.clock.Now().Sub(start)
	report.Rejected = rejections
	report.Counts = b.catalogs.Counts()

	report.Generated = make(map[manifest.PageKind]int, len(artifacts))
	for _, a := range artifacts {
		report.Generated[a.entry.Key.Kind]++
	}

	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.IncBuildOutcome("success")
	b.logSummary(report)
	return report, nil
}

func (b *Builder) buildManifest() (*manifest.Manifest, error) {
	stageStart := b.clock.Now()
	m, err := manifest.Build(b.catalogs, b.cfg.SiteOrigin, b.cfg.Policy)
	if err != nil {
		return nil, err
	}
	b.recorder.SetManifestSize(m.Len())
	b.recorder.ObserveStageDuration("manifest", b.clock.Now().Sub(stageStart))
	b.logger.Info("manifest built", "entries", m.Len())
	return m, nil
}

func (b *Builder) assemblePages(ctx context.Context, m *manifest.Manifest) ([]artifact, []Rejection, error) {
	stageStart := b.clock.Now()
	opts := content.AssembleOptions{MaxSuburbs: b.cfg.Policy.MaxSuburbsPerCity}

	results := runOrdered(ctx, m.Entries, b.concurrency, func(e manifest.Entry) (artifact, error) {
		page, err := content.AssembleKey(b.catalogs, e.Key, b.cfg.SiteOrigin, opts)
		if err != nil {
			return artifact{entry: e}, err
		}
		if findings := lint.Page(page); len(findings) > 0 {
			return artifact{entry: e}, builderrors.New(
				builderrors.CategoryTemplate, builderrors.SeverityError, "lint rejected page").
				WithContext("url", e.URL).
				WithContext("finding", findings[0].String())
		}
		data, err := page.Marshal()
		if err != nil {
			return artifact{entry: e}, builderrors.Wrap(err, builderrors.CategoryInternal, builderrors.SeverityFatal, "page marshal failed")
		}
		return artifact{entry: e, path: e.Key.ArtifactPath(), data: data}, nil
	})

	var artifacts []artifact
	var rejections []Rejection
	for _, res := range results {
		if res.Err == nil {
			b.recorder.IncPageResult(string(res.Value.entry.Key.Kind), metrics.ResultSuccess)
			artifacts = append(artifacts, res.Value)
			continue
		}

		if stderrors.Is(res.Err, context.Canceled) || stderrors.Is(res.Err, context.DeadlineExceeded) {
			return nil, nil, builderrors.Wrap(res.Err,
				builderrors.CategoryRuntime, builderrors.SeverityFatal, "build canceled")
		}

		var be *builderrors.BuildError
		fatal := true
		if stderrors.As(res.Err, &be) {
			fatal = be.IsFatal()
		}
		if fatal || b.cfg.Strict {
			b.recorder.IncPageResult(string(res.Value.entry.Key.Kind), metrics.ResultFatal)
			if b.cfg.Strict && !fatal {
				return nil, nil, builderrors.Wrap(res.Err,
					builderrors.CategoryTemplate, builderrors.SeverityFatal, "page rejected in strict mode").
					WithContext("url", res.Value.entry.URL)
			}
			return nil, nil, res.Err
		}

		b.recorder.IncPageResult(string(res.Value.entry.Key.Kind), metrics.ResultRejected)
		b.logger.Warn("page rejected", "url", res.Value.entry.URL, "error", res.Err)
		rejections = append(rejections, Rejection{
			URL:    res.Value.entry.URL,
			Kind:   res.Value.entry.Key.Kind,
			Reason: res.Err.Error(),
		})
	}

	b.recorder.ObserveStageDuration("pages", b.clock.Now().Sub(stageStart))
	return artifacts, rejections, nil
}

func (b *Builder) emit(ctx context.Context, m *manifest.Manifest, artifacts []artifact) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryRuntime, builderrors.SeverityFatal, "build canceled")
	}
	stageStart := b.clock.Now()

	for _, a := range artifacts {
		if err := b.sink.Write(a.path, a.data); err != nil {
			return nil, err
		}
	}

	set, err := sitemap.Assemble(m, b.clock.Now(), b.cfg.Sitemap.MaxURLsPerShard)
	if err != nil {
		return nil, err
	}
	for _, shard := range set.Shards {
		data, err := set.EncodeShard(shard)
		if err != nil {
			return nil, err
		}
		if err := b.sink.Write(shard.Filename, data); err != nil {
			return nil, err
		}
	}
	index, err := set.EncodeIndex()
	if err != nil {
		return nil, err
	}
	if err := b.sink.Write(set.IndexFilename, index); err != nil {
		return nil, err
	}

	hash, err := m.Hash()
	if err != nil {
		return nil, builderrors.Wrap(err, builderrors.CategoryInternal, builderrors.SeverityFatal, "manifest hash failed")
	}

	b.recorder.SetSitemapShards(len(set.Shards))
	b.recorder.ObserveStageDuration("emit", b.clock.Now().Sub(stageStart))

	return &Report{
		PagesWritten: len(artifacts),
		SitemapURLs:  set.URLCount(),
		Shards:       len(set.Shards),
		ManifestHash: hash,
	}, nil
}

func (b *Builder) logSummary(r *Report) {
	b.logger.Info("build complete",
		"pages", r.PagesWritten,
		"rejected", len(r.Rejected),
		"sitemap_urls", r.SitemapURLs,
		"shards", r.Shards,
		"duration", r.Duration,
		"manifest_hash", r.ManifestHash)
	for kind, n := range r.Counts {
		b.logger.Debug("catalog", "kind", string(kind), "entries", n)
	}
}
