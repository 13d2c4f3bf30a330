package metrics

import "time"

// ResultLabel enumerates step result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for build and step metrics.
// Implementations may forward to Prometheus or a textfile collector.
type Recorder interface {
	ObserveStepDuration(step string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStepResult(step string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed|canceled
	SetCollectedFiles(kind string, n int)
	IncVersionBump(part string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStepDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)        {}
func (NoopRecorder) IncStepResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(string)                    {}
func (NoopRecorder) SetCollectedFiles(string, int)             {}
func (NoopRecorder) IncVersionBump(string)                     {}
