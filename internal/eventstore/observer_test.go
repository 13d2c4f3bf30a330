package eventstore

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/artifactbuilder/internal/artifact"
	"git.home.luguber.info/inful/artifactbuilder/internal/pipeline"
	"git.home.luguber.info/inful/artifactbuilder/internal/versioning"
)

func runJournaled(t *testing.T, store Store, steps ...pipeline.StepDef) *pipeline.BuildReport {
	t.Helper()
	obs := NewHistoryObserver(store, BuildStarted{SourceDir: ".", ArtifactDir: "artifact", Bump: "minor"}, nil)
	p := pipeline.NewPipeline(
		pipeline.WithObserver(obs),
		pipeline.WithBuildID(func() string { return "run-1" }),
	)
	for _, s := range steps {
		require.NoError(t, p.Register(s))
	}
	report, _ := p.Run(context.Background(), pipeline.NewState())
	require.NotNil(t, report)
	return report
}

func TestHistoryObserverJournalsSuccessfulRun(t *testing.T) {
	store := newMemoryStore(t)
	runJournaled(t, store,
		pipeline.StepDef{Name: "compose", Weight: 1, Fn: func(_ context.Context, st *pipeline.State) error {
			pipeline.Set(st, artifact.KeyLatestVersion, "1.2.3")
			pipeline.Set(st, artifact.KeyNextVersion, versioning.MustParseSemantic("1.3.0"))
			pipeline.Set(st, artifact.KeyNextLegacy, "8.x-1.3")
			pipeline.Set(st, artifact.KeyBuildDir, "artifact/1.3.0/drupal-module")
			return nil
		}},
		pipeline.StepDef{Name: "collect", Weight: 2, Fn: func(_ context.Context, st *pipeline.State) error {
			pipeline.Set(st, artifact.KeyFiles, []string{"a.php", "b.info.yml"})
			return nil
		}},
	)

	events, err := store.GetByBuildID(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, events, 4)

	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	assert.Equal(t, []EventType{TypeBuildStarted, TypeStepCompleted, TypeStepCompleted, TypeBuildCompleted}, types)

	var step StepCompleted
	require.NoError(t, events[1].Decode(&step))
	assert.Equal(t, "compose", step.Step)
	assert.Equal(t, "success", step.Result)

	var done BuildCompleted
	require.NoError(t, events[3].Decode(&done))
	assert.Equal(t, "success", done.Outcome)
	assert.Equal(t, "1.2.3", done.LatestVersion)
	assert.Equal(t, "1.3.0", done.Version)
	assert.Equal(t, "8.x-1.3", done.Legacy)
	assert.Equal(t, "artifact/1.3.0/drupal-module", done.BuildDir)
	assert.Equal(t, 2, done.FileCount)

	p := NewBuildHistoryProjection(store, 10)
	require.NoError(t, p.Rebuild(context.Background()))
	summary, ok := p.GetBuild("run-1")
	require.True(t, ok)
	assert.Equal(t, "minor", summary.Input.Bump)
	assert.Equal(t, 2, summary.Steps)
}

func TestHistoryObserverJournalsFailure(t *testing.T) {
	store := newMemoryStore(t)
	runJournaled(t, store,
		pipeline.StepDef{Name: "broken", Weight: 1, Fn: func(context.Context, *pipeline.State) error {
			return stderrors.New("disk full")
		}},
		pipeline.StepDef{Name: "never", Weight: 2, Fn: func(context.Context, *pipeline.State) error { return nil }},
	)

	events, err := store.GetByBuildID(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	var step StepCompleted
	require.NoError(t, events[1].Decode(&step))
	assert.Equal(t, "fatal", step.Result)
	assert.Contains(t, step.Error, "disk full")

	var done BuildCompleted
	require.NoError(t, events[2].Decode(&done))
	assert.Equal(t, "failed", done.Outcome)
	assert.Equal(t, "broken", done.FailedStep)
	assert.Empty(t, done.Version)
}

type failingStore struct{ Store }

func (failingStore) Append(context.Context, Event) error { return ErrAppend }

func TestHistoryObserverLogsAppendFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := NewHistoryObserver(failingStore{}, BuildStarted{}, logger)

	obs.OnBuildStart(&pipeline.BuildReport{BuildID: "b", Start: time.Now()})

	assert.Contains(t, buf.String(), "Failed to record build event")
	assert.Contains(t, buf.String(), "build_id=b")
}
