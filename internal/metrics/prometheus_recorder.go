package metrics

import (
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	buildDuration prom.Histogram
	stageDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	pageResults   *prom.CounterVec
	manifestSize  prom.Gauge
	sitemapShards prom.Gauge

	registry *prom.Registry
}

// NewPrometheusRecorder constructs and registers the build metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitegen",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitegen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitegen",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.pageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitegen",
			Name:      "page_results_total",
			Help:      "Page generation results by page kind and outcome",
		}, []string{"kind", "result"})
		pr.manifestSize = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitegen",
			Name:      "manifest_entries",
			Help:      "Manifest entry count of the last build",
		})
		pr.sitemapShards = prom.NewGauge(prom.GaugeOpts{
			Namespace: "sitegen",
			Name:      "sitemap_shards",
			Help:      "Sitemap shard count of the last build",
		})
		reg.MustRegister(pr.buildDuration, pr.stageDuration, pr.buildOutcome,
			pr.pageResults, pr.manifestSize, pr.sitemapShards)
	})
	return pr
}

func (pr *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	pr.buildDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	pr.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncBuildOutcome(outcome string) {
	pr.buildOutcome.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) IncPageResult(kind string, result ResultLabel) {
	pr.pageResults.WithLabelValues(kind, string(result)).Inc()
}

func (pr *PrometheusRecorder) SetManifestSize(n int) {
	pr.manifestSize.Set(float64(n))
}

func (pr *PrometheusRecorder) SetSitemapShards(n int) {
	pr.sitemapShards.Set(float64(n))
}

// HTTPHandler serves the recorder's registry for scraping.
func (pr *PrometheusRecorder) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(pr.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
