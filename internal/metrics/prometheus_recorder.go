package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"
)

const namespace = "artifactbuilder"

// ErrTextfileWrite is returned when the textfile collector output cannot be written.
var ErrTextfileWrite = errors.FileSystemError("cannot write metrics textfile").Build()

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	reg            *prom.Registry
	stepDuration   *prom.HistogramVec
	buildDuration  prom.Histogram
	stepResults    *prom.CounterVec
	buildOutcome   *prom.CounterVec
	collectedFiles *prom.GaugeVec
	versionBumps   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.stepDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of individual build steps",
			Buckets:   prom.DefBuckets,
		}, []string{"step"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stepResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "step_results_total",
			Help:      "Step result counts by outcome",
		}, []string{"step", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.collectedFiles = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "collected_files",
			Help:      "Number of files selected for the last artifact, by package kind",
		}, []string{"kind"})
		pr.versionBumps = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "version_bumps_total",
			Help:      "Next-version computations by bump policy",
		}, []string{"part"})
		reg.MustRegister(pr.stepDuration, pr.buildDuration, pr.stepResults, pr.buildOutcome, pr.collectedFiles, pr.versionBumps)
	})
	return pr
}

// Registry exposes the underlying registry for gathering.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.reg
}

// WriteTextfile dumps all registered metrics in the node_exporter textfile format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return ErrTextfileWrite.WithContext("path", path).Wrap(err)
	}
	return nil
}

func (p *PrometheusRecorder) ObserveStepDuration(step string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepResult(step string, result ResultLabel) {
	if p == nil || p.stepResults == nil {
		return
	}
	p.stepResults.WithLabelValues(step, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetCollectedFiles(kind string, n int) {
	if p == nil || p.collectedFiles == nil {
		return
	}
	p.collectedFiles.WithLabelValues(kind).Set(float64(n))
}

func (p *PrometheusRecorder) IncVersionBump(part string) {
	if p == nil || p.versionBumps == nil {
		return
	}
	p.versionBumps.WithLabelValues(part).Inc()
}
