package metrics

import "time"

// ResultLabel enumerates page generation outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultRejected ResultLabel = "rejected"
	ResultFatal    ResultLabel = "fatal"
)

// Recorder defines observability hooks for build metrics. Implementations
// may forward to Prometheus; the NoopRecorder default makes metrics
// optional injection with no nil checks at call sites.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed
	IncPageResult(kind string, result ResultLabel)
	SetManifestSize(n int)
	SetSitemapShards(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) IncPageResult(string, ResultLabel)          {}
func (NoopRecorder) SetManifestSize(int)                        {}
func (NoopRecorder) SetSitemapShards(int)                       {}
