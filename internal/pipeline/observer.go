package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
)

// Observer receives callbacks around step execution and the run lifecycle.
type Observer interface {
	OnBuildStart(report *BuildReport)
	OnStepStart(report *BuildReport, step StepName)
	OnStepComplete(report *BuildReport, step StepName, d time.Duration, result StepResult, err error)
	OnBuildComplete(report *BuildReport)
}

// NoopObserver does nothing.
type NoopObserver struct{}

func (NoopObserver) OnBuildStart(*BuildReport)                                               {}
func (NoopObserver) OnStepStart(*BuildReport, StepName)                                      {}
func (NoopObserver) OnStepComplete(*BuildReport, StepName, time.Duration, StepResult, error) {}
func (NoopObserver) OnBuildComplete(*BuildReport)                                            {}

// MultiObserver fans callbacks out in order.
type MultiObserver []Observer

func (m MultiObserver) OnBuildStart(r *BuildReport) {
	for _, o := range m {
		o.OnBuildStart(r)
	}
}

func (m MultiObserver) OnStepStart(r *BuildReport, step StepName) {
	for _, o := range m {
		o.OnStepStart(r, step)
	}
}

func (m MultiObserver) OnStepComplete(r *BuildReport, step StepName, d time.Duration, res StepResult, err error) {
	for _, o := range m {
		o.OnStepComplete(r, step, d, res, err)
	}
}

func (m MultiObserver) OnBuildComplete(r *BuildReport) {
	for _, o := range m {
		o.OnBuildComplete(r)
	}
}

// LogObserver writes step progress to a slog logger.
type LogObserver struct{ Logger *slog.Logger }

func (l LogObserver) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l LogObserver) OnBuildStart(r *BuildReport) {
	l.logger().Debug("Build started", logfields.BuildID(r.BuildID))
}

func (l LogObserver) OnStepStart(_ *BuildReport, step StepName) {
	l.logger().Info("Executing step", logfields.Step(string(step)))
}

func (l LogObserver) OnStepComplete(_ *BuildReport, step StepName, d time.Duration, res StepResult, err error) {
	attrs := []slog.Attr{
		logfields.Step(string(step)),
		logfields.DurationMS(float64(d.Microseconds()) / 1000),
	}
	switch res {
	case StepResultSuccess:
		l.logger().LogAttrs(context.Background(), slog.LevelDebug, "Step completed", attrs...)
	case StepResultWarning:
		l.logger().LogAttrs(context.Background(), slog.LevelWarn, "Step completed with warning", append(attrs, logfields.Error(err))...)
	default:
		l.logger().LogAttrs(context.Background(), slog.LevelError, "Step failed", append(attrs, logfields.Error(err))...)
	}
}

func (l LogObserver) OnBuildComplete(r *BuildReport) {
	level := slog.LevelInfo
	if r.Outcome == OutcomeFailed || r.Outcome == OutcomeCanceled {
		level = slog.LevelError
	}
	l.logger().LogAttrs(context.Background(), level, "Build finished",
		logfields.BuildID(r.BuildID),
		logfields.Outcome(string(r.Outcome)),
		logfields.DurationMS(float64(r.Duration().Microseconds())/1000))
}

// RecorderObserver forwards step and build results to a metrics.Recorder.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (RecorderObserver) OnBuildStart(*BuildReport)          {}
func (RecorderObserver) OnStepStart(*BuildReport, StepName) {}

func (o RecorderObserver) OnStepComplete(_ *BuildReport, step StepName, d time.Duration, res StepResult, _ error) {
	if o.Recorder == nil {
		return
	}
	o.Recorder.ObserveStepDuration(string(step), d)
	o.Recorder.IncStepResult(string(step), metrics.ResultLabel(res))
}

func (o RecorderObserver) OnBuildComplete(r *BuildReport) {
	if o.Recorder == nil {
		return
	}
	o.Recorder.ObserveBuildDuration(r.Duration())
	o.Recorder.IncBuildOutcome(string(r.Outcome))
}
