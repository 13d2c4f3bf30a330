package eventstore

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/artifactbuilder/internal/artifact"
	"git.home.luguber.info/inful/artifactbuilder/internal/logfields"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
)

// HistoryObserver journals a run into a Store. Append failures are logged
// and never fail the build.
type HistoryObserver struct {
	store  Store
	input  BuildStarted
	logger *slog.Logger
	now    func() time.Time
}

var _ pipeline.Observer = (*HistoryObserver)(nil)

// NewHistoryObserver records runs started with the given input.
func NewHistoryObserver(store Store, input BuildStarted, logger *slog.Logger) *HistoryObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryObserver{store: store, input: input, logger: logger, now: time.Now}
}

func (h *HistoryObserver) OnBuildStart(r *pipeline.BuildReport) {
	h.append(r.BuildID, func() (Event, error) { return NewBuildStarted(r.BuildID, r.Start, h.input) })
}

func (h *HistoryObserver) OnStepStart(*pipeline.BuildReport, pipeline.StepName) {}

func (h *HistoryObserver) OnStepComplete(r *pipeline.BuildReport, step pipeline.StepName, d time.Duration, res pipeline.StepResult, err error) {
	p := StepCompleted{Step: string(step), Result: string(res), DurationMS: d.Milliseconds()}
	if err != nil {
		p.Error = err.Error()
	}
	h.append(r.BuildID, func() (Event, error) { return NewStepCompleted(r.BuildID, h.now(), p) })
}

func (h *HistoryObserver) OnBuildComplete(r *pipeline.BuildReport) {
	p := completedFromReport(r)
	h.append(r.BuildID, func() (Event, error) { return NewBuildCompleted(r.BuildID, r.End, p) })
}

func (h *HistoryObserver) append(buildID string, mk func() (Event, error)) {
	e, err := mk()
	if err == nil {
		err = h.store.Append(context.Background(), e)
	}
	if err != nil {
		h.logger.Warn("Failed to record build event", logfields.BuildID(buildID), logfields.Error(err))
	}
}

func completedFromReport(r *pipeline.BuildReport) BuildCompleted {
	p := BuildCompleted{
		Outcome:    string(r.Outcome),
		FailedStep: string(r.FailedStep),
		Warnings:   len(r.Warnings),
		DurationMS: r.Duration().Milliseconds(),
	}
	if r.Err != nil {
		p.Error = r.Err.Error()
	}
	st := r.State
	if st == nil {
		return p
	}
	p.LatestVersion, _ = pipeline.Lookup(st, artifact.KeyLatestVersion)
	if v, ok := pipeline.Lookup(st, artifact.KeyNextVersion); ok {
		p.Version = v.String()
	}
	p.Legacy, _ = pipeline.Lookup(st, artifact.KeyNextLegacy)
	p.ArtifactType, _ = pipeline.Lookup(st, artifact.KeyArtifactType)
	p.BuildDir, _ = pipeline.Lookup(st, artifact.KeyBuildDir)
	if files, ok := pipeline.Lookup(st, artifact.KeyFiles); ok {
		p.FileCount = len(files)
	}
	return p
}
