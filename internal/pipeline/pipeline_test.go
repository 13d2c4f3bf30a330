package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/artifactbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/artifactbuilder/internal/metrics"
)

func recordingStep(trace *[]StepName, name StepName) Step {
	return func(context.Context, *State) error {
		*trace = append(*trace, name)
		return nil
	}
}

func mustRegister(t *testing.T, p *Pipeline, def StepDef) {
	t.Helper()
	require.NoError(t, p.Register(def))
}

func fixedClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(10 * time.Millisecond)
		return t
	}
}

func TestStepsRunInWeightOrderWithPinnedTail(t *testing.T) {
	var trace []StepName
	p := NewPipeline(WithBuildID(func() string { return "b1" }))

	require.NoError(t, p.RegisterPinned("cleanup_collect", 9990, "", recordingStep(&trace, "cleanup_collect")))
	require.NoError(t, p.RegisterPinned("cleanup_delete", 9999, "", recordingStep(&trace, "cleanup_delete")))
	require.NoError(t, p.Register(StepDef{Name: "A", Weight: 5, Fn: recordingStep(&trace, "A")}))
	require.NoError(t, p.Register(StepDef{Name: "B", Weight: 1, Fn: recordingStep(&trace, "B")}))

	report, err := p.Run(context.Background(), NewState())
	require.NoError(t, err)
	assert.Equal(t, []StepName{"B", "A", "cleanup_collect", "cleanup_delete"}, trace)
	assert.Equal(t, OutcomeSuccess, report.Outcome)
	assert.Equal(t, "b1", report.BuildID)

	steps := p.Steps()
	assert.Equal(t, 5+9990, steps[2].Weight)
	assert.Equal(t, 5+9999, steps[3].Weight)
}

func TestPinnedStepsFollowLaterRegistrations(t *testing.T) {
	p := NewPipeline()
	noop := func(context.Context, *State) error { return nil }
	require.NoError(t, p.RegisterPinned("tail", 10, "", noop))
	require.NoError(t, p.Register(StepDef{Name: "early", Weight: -240, Fn: noop}))
	require.NoError(t, p.Register(StepDef{Name: "late", Weight: 5000, Fn: noop}))

	steps := p.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, StepName("tail"), steps[2].Name)
	assert.Equal(t, 5010, steps[2].Weight)
}

func TestPinnedWithoutUnpinnedSteps(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.RegisterPinned("only", 7, "", func(context.Context, *State) error { return nil }))
	assert.Equal(t, 7, p.Steps()[0].Weight)
}

func TestEqualWeightsKeepRegistrationOrder(t *testing.T) {
	var trace []StepName
	p := NewPipeline()
	for _, n := range []StepName{"x", "y", "z"} {
		mustRegister(t, p, StepDef{Name: n, Weight: 0, Fn: recordingStep(&trace, n)})
	}
	_, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []StepName{"x", "y", "z"}, trace)
}

func TestExtremeWeightsKeepAscendingOrder(t *testing.T) {
	var trace []StepName
	p := NewPipeline()
	mustRegister(t, p, StepDef{Name: "high", Weight: 1, Fn: recordingStep(&trace, "high")})
	mustRegister(t, p, StepDef{Name: "low", Weight: math.MinInt, Fn: recordingStep(&trace, "low")})
	mustRegister(t, p, StepDef{Name: "max", Weight: math.MaxInt, Fn: recordingStep(&trace, "max")})
	mustRegister(t, p, StepDef{Name: "zero", Weight: 0, Fn: recordingStep(&trace, "zero")})

	_, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []StepName{"low", "zero", "high", "max"}, trace)
}

func TestPinnedWeightSaturatesAtMaxInt(t *testing.T) {
	var trace []StepName
	p := NewPipeline()
	require.NoError(t, p.RegisterPinned("delete", 9999, "", recordingStep(&trace, "delete")))
	require.NoError(t, p.RegisterPinned("collect", 9990, "", recordingStep(&trace, "collect")))
	mustRegister(t, p, StepDef{Name: "low", Weight: math.MinInt, Fn: recordingStep(&trace, "low")})
	mustRegister(t, p, StepDef{Name: "near_max", Weight: math.MaxInt - 5, Fn: recordingStep(&trace, "near_max")})

	_, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []StepName{"low", "near_max", "collect", "delete"}, trace)

	steps := p.Steps()
	assert.Equal(t, math.MaxInt, steps[2].Weight)
	assert.Equal(t, math.MaxInt, steps[3].Weight)
}

func TestRegisterRejectsDuplicatesAndInvalid(t *testing.T) {
	p := NewPipeline()
	noop := func(context.Context, *State) error { return nil }
	require.NoError(t, p.Register(StepDef{Name: "a", Fn: noop}))

	err := p.Register(StepDef{Name: "a", Fn: noop})
	require.ErrorIs(t, err, ErrDuplicateStep)
	require.ErrorIs(t, p.RegisterPinned("a", 10, "", noop), ErrDuplicateStep)
	require.ErrorIs(t, p.Register(StepDef{Name: "b"}), ErrInvalidStep)
	require.ErrorIs(t, p.RegisterPinned("c", 0, "", noop), ErrInvalidStep)
	assert.Len(t, p.Steps(), 1)
}

var testKey = NewKey[string]("test.value")

func TestFailFastKeepsEarlierState(t *testing.T) {
	var trace []StepName
	boom := stderrors.New("boom")
	p := NewPipeline()
	mustRegister(t, p, StepDef{Name: "set", Weight: 1, Fn: func(_ context.Context, st *State) error {
		trace = append(trace, "set")
		Set(st, testKey, "kept")
		return nil
	}})
	mustRegister(t, p, StepDef{Name: "fail", Weight: 2, Fn: func(context.Context, *State) error {
		trace = append(trace, "fail")
		return boom
	}})
	mustRegister(t, p, StepDef{Name: "never", Weight: 3, Fn: recordingStep(&trace, "never")})

	st := NewState()
	report, err := p.Run(context.Background(), st)
	require.Error(t, err)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepName("fail"), se.Step)
	assert.Equal(t, StepErrorFatal, se.Kind)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []StepName{"set", "fail"}, trace)
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.Equal(t, StepName("fail"), report.FailedStep)

	v, ok := Lookup(st, testKey)
	assert.True(t, ok)
	assert.Equal(t, "kept", v)
}

func TestDeferredArgumentResolvesAtRunTime(t *testing.T) {
	p := NewPipeline()
	arg := Defer(testKey)
	var got string
	mustRegister(t, p, StepDef{Name: "consume", Weight: 2, Fn: func(_ context.Context, st *State) error {
		v, err := arg.Resolve(st)
		got = v
		return err
	}})
	mustRegister(t, p, StepDef{Name: "produce", Weight: 1, Fn: func(_ context.Context, st *State) error {
		Set(st, testKey, "late-bound")
		return nil
	}})

	_, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "late-bound", got)
}

func TestMissingPrerequisiteFailsTheStep(t *testing.T) {
	p := NewPipeline()
	arg := Defer(testKey)
	mustRegister(t, p, StepDef{Name: "consume", Fn: func(_ context.Context, st *State) error {
		_, err := arg.Resolve(st)
		return err
	}})

	report, err := p.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrMissingPrerequisite)
	assert.Equal(t, StepName("consume"), report.FailedStep)

	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	key, _ := ce.Context().GetString("key")
	assert.Equal(t, "test.value", key)
}

func TestStateTypeMismatch(t *testing.T) {
	st := NewState()
	Set(st, NewKey[int]("test.value"), 42)
	_, err := Get(st, testKey)
	require.ErrorIs(t, err, ErrStateType)

	assert.True(t, st.Has("test.value"))
	assert.Equal(t, []string{"test.value"}, st.Keys())
}

func TestLiteralArgument(t *testing.T) {
	v, err := Literal[int]{Value: 3}.Resolve(NewState())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestWarningsDoNotStopTheRun(t *testing.T) {
	var trace []StepName
	p := NewPipeline()
	mustRegister(t, p, StepDef{Name: "soft", Weight: 1, Fn: func(context.Context, *State) error {
		trace = append(trace, "soft")
		return Warn("soft", stderrors.New("no tags"))
	}})
	mustRegister(t, p, StepDef{Name: "after", Weight: 2, Fn: recordingStep(&trace, "after")})

	report, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []StepName{"soft", "after"}, trace)
	assert.Equal(t, OutcomeWarning, report.Outcome)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, StepResultWarning, report.Steps[0].Result)
	assert.Contains(t, report.Summary(), "warnings=1")
}

func TestCanceledContextStopsBeforeNextStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var trace []StepName
	p := NewPipeline()
	mustRegister(t, p, StepDef{Name: "first", Weight: 1, Fn: func(context.Context, *State) error {
		trace = append(trace, "first")
		cancel()
		return nil
	}})
	mustRegister(t, p, StepDef{Name: "second", Weight: 2, Fn: recordingStep(&trace, "second")})

	report, err := p.Run(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepErrorCanceled, se.Kind)
	assert.Equal(t, StepName("second"), se.Step)
	assert.Equal(t, []StepName{"first"}, trace)
	assert.Equal(t, OutcomeCanceled, report.Outcome)
	assert.Equal(t, []StepName{"first"}, report.Executed())
}

type countingObserver struct {
	NoopObserver
	starts, completes int
	results           []StepResult
}

func (c *countingObserver) OnBuildStart(*BuildReport) { c.starts++ }
func (c *countingObserver) OnStepComplete(_ *BuildReport, _ StepName, _ time.Duration, res StepResult, _ error) {
	c.results = append(c.results, res)
}
func (c *countingObserver) OnBuildComplete(*BuildReport) { c.completes++ }

type fakeRecorder struct {
	metrics.NoopRecorder
	steps    map[string]metrics.ResultLabel
	outcomes []string
}

func (f *fakeRecorder) IncStepResult(step string, res metrics.ResultLabel) { f.steps[step] = res }
func (f *fakeRecorder) IncBuildOutcome(outcome string)                     { f.outcomes = append(f.outcomes, outcome) }

func TestObserversReceiveLifecycle(t *testing.T) {
	obs := &countingObserver{}
	rec := &fakeRecorder{steps: map[string]metrics.ResultLabel{}}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := NewPipeline(
		WithClock(fixedClock()),
		WithObserver(obs, RecorderObserver{Recorder: rec}, LogObserver{Logger: logger}),
	)
	mustRegister(t, p, StepDef{Name: "ok", Weight: 1, Fn: func(context.Context, *State) error { return nil }})
	mustRegister(t, p, StepDef{Name: "bad", Weight: 2, Fn: func(context.Context, *State) error { return stderrors.New("nope") }})

	report, err := p.Run(context.Background(), nil)
	require.Error(t, err)

	assert.Equal(t, 1, obs.starts)
	assert.Equal(t, 1, obs.completes)
	assert.Equal(t, []StepResult{StepResultSuccess, StepResultFatal}, obs.results)

	assert.Equal(t, metrics.ResultSuccess, rec.steps["ok"])
	assert.Equal(t, metrics.ResultFatal, rec.steps["bad"])
	assert.Equal(t, []string{"failed"}, rec.outcomes)

	out := buf.String()
	assert.Contains(t, out, "step=bad")
	assert.Contains(t, out, "Step failed")
	assert.Contains(t, out, "outcome=failed")
	assert.Positive(t, report.Duration())
}
