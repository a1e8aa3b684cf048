package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
	"github.com/disasterrecoveryau/sitegen/internal/storage"
)

const testOrigin = "https://disasterrecovery.com.au"

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.SiteOrigin = testOrigin
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testBuilder(t *testing.T, cfg *config.Config, c *catalog.Catalogs) (*Builder, *storage.MemSink) {
	t.Helper()
	sink := storage.NewMemSink()
	b := New(cfg, c, sink,
		WithClock(clockwork.NewFakeClockAt(testTime)),
		WithLogger(quietLogger()),
		WithConcurrency(4))
	return b, sink
}

func defaultCatalogs(t *testing.T) *catalog.Catalogs {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return c
}

// taintedCatalogs builds a catalog whose single guide leaks a template
// token, so its knowledge page fails lint while every other page is clean.
func taintedCatalogs(t *testing.T) *catalog.Catalogs {
	t.Helper()
	dir := t.TempDir()

	writeYAML := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	writeYAML("locations.yaml", `locations:
  - slug: sydney
    city: Sydney
    state: NSW
    population: 5312000
    climate: Temperate oceanic
    postcode: "2000"
    suburbs: [Parramatta, Bondi]
`)
	writeYAML("services.yaml", `services:
  - slug: water-damage
    label: Water Damage Restoration
    category: water
    urgency: critical
    cost_range: $2,000-$15,000
`)
	writeYAML("guides.yaml", `guides:
  - slug: broken-guide
    title: Broken Guide
    summary: A guide with a leaked token.
    body: |
      This body leaks {City} into the output.
`)

	c, err := catalog.Load(dir)
	require.NoError(t, err)
	return c
}

func TestRunWritesEveryArtifact(t *testing.T) {
	cfg := testConfig()
	c := defaultCatalogs(t)
	b, sink := testBuilder(t, cfg, c)

	report, err := b.Run(t.Context())
	require.NoError(t, err)

	m, err := manifest.Build(c, testOrigin, cfg.Policy)
	require.NoError(t, err)

	assert.Equal(t, m.Len(), report.PagesWritten)
	assert.Empty(t, report.Rejected)
	assert.Equal(t, report.PagesWritten, report.SitemapURLs)
	assert.NotEmpty(t, report.ManifestHash)

	_, ok := sink.Get("pages/index.json")
	assert.True(t, ok, "home page artifact missing")
	_, ok = sink.Get("pages/services/water-damage/sydney.json")
	assert.True(t, ok, "combination artifact missing")
	_, ok = sink.Get("sitemap.xml")
	assert.True(t, ok, "sitemap index missing")

	var shardCount int
	for _, p := range sink.Paths() {
		if strings.HasPrefix(p, "sitemap-") {
			shardCount++
		}
	}
	assert.Equal(t, report.Shards, shardCount)
}

func TestRunDeterministicAcrossRebuilds(t *testing.T) {
	cfg := testConfig()
	c := defaultCatalogs(t)

	run := func() (*Report, *storage.MemSink) {
		b, sink := testBuilder(t, cfg, c)
		report, err := b.Run(t.Context())
		require.NoError(t, err)
		return report, sink
	}

	r1, s1 := run()
	r2, s2 := run()

	assert.Equal(t, r1.ManifestHash, r2.ManifestHash)
	require.Equal(t, s1.Paths(), s2.Paths())
	for _, p := range s1.Paths() {
		a, _ := s1.Get(p)
		b, _ := s2.Get(p)
		assert.Equal(t, a, b, "artifact %s differs between rebuilds", p)
	}
}

func TestRejectedPageDroppedFromSitemap(t *testing.T) {
	cfg := testConfig()
	b, sink := testBuilder(t, cfg, taintedCatalogs(t))

	report, err := b.Run(t.Context())
	require.NoError(t, err)

	require.Len(t, report.Rejected, 1)
	rejected := report.Rejected[0]
	assert.Equal(t, testOrigin+"/resources/broken-guide", rejected.URL)
	assert.Contains(t, rejected.Reason, "lint")

	_, ok := sink.Get("pages/resources/broken-guide.json")
	assert.False(t, ok, "rejected page must not be written")

	for _, p := range sink.Paths() {
		if !strings.HasPrefix(p, "sitemap") {
			continue
		}
		data, _ := sink.Get(p)
		assert.NotContains(t, string(data), rejected.URL,
			"sitemap %s references a rejected page", p)
	}
	assert.Equal(t, report.PagesWritten, report.SitemapURLs)
}

func TestStrictModeEscalatesRejection(t *testing.T) {
	cfg := testConfig()
	cfg.Strict = true
	b, sink := testBuilder(t, cfg, taintedCatalogs(t))

	_, err := b.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, builderrors.CategoryTemplate, builderrors.CategoryOf(err))
	assert.Zero(t, sink.Len(), "strict failure must not emit artifacts")
}

func TestSinkFailureAbortsBuild(t *testing.T) {
	cfg := testConfig()
	sink := storage.NewMemSink()
	sink.FailOn = "sitemap.xml"
	b := New(cfg, defaultCatalogs(t), sink,
		WithClock(clockwork.NewFakeClockAt(testTime)),
		WithLogger(quietLogger()))

	_, err := b.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, builderrors.CategoryFileSystem, builderrors.CategoryOf(err))
}

func TestManifestOverflowFailsBuild(t *testing.T) {
	cfg := testConfig()
	cfg.Policy.MaxPages = 10
	b, _ := testBuilder(t, cfg, defaultCatalogs(t))

	_, err := b.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, builderrors.CategoryManifest, builderrors.CategoryOf(err))
}

func TestReportCountsPagesByKind(t *testing.T) {
	b, _ := testBuilder(t, testConfig(), taintedCatalogs(t))

	report, err := b.Run(t.Context())
	require.NoError(t, err)

	total := 0
	for _, n := range report.Generated {
		total += n
	}
	assert.Equal(t, report.PagesWritten, total)
	assert.Equal(t, 1, report.Generated[manifest.KindCombination])
	assert.Greater(t, report.Generated[manifest.KindCore], 0)

	rejected := report.RejectedByKind()
	assert.Equal(t, 1, rejected[manifest.KindKnowledge])
}

func TestRunOrderedPreservesOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	results := runOrdered(t.Context(), items, 8, func(i int) (string, error) {
		if i%10 == 3 {
			return "", fmt.Errorf("item %d", i)
		}
		return fmt.Sprintf("v%d", i), nil
	})
	require.Len(t, results, 100)
	for i, r := range results {
		if i%10 == 3 {
			assert.Error(t, r.Err)
		} else {
			assert.Equal(t, fmt.Sprintf("v%d", i), r.Value)
		}
	}
}

func TestRunOrderedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	items := []int{1, 2, 3, 4}
	results := runOrdered(ctx, items, 2, func(i int) (string, error) {
		t.Fatalf("item %d ran after cancel", i)
		return "", nil
	})
	require.Len(t, results, len(items))
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRunCanceledContextFailsBuild(t *testing.T) {
	b, _ := testBuilder(t, testConfig(), defaultCatalogs(t))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := b.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, builderrors.CategoryRuntime, builderrors.CategoryOf(err))
}
