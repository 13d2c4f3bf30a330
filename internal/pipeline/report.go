package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// BuildOutcome is the final result of a run.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StepRecord is one executed step.
type StepRecord struct {
	Name     StepName
	Weight   int
	Duration time.Duration
	Result   StepResult
}

// BuildReport describes a finished run.
type BuildReport struct {
	BuildID    string
	Start      time.Time
	End        time.Time
	Steps      []StepRecord
	Outcome    BuildOutcome
	FailedStep StepName
	Err        error
	Warnings   []error
	// State is the state the run worked on.
	State *State
}

func newBuildReport(id string, start time.Time, st *State) *BuildReport {
	return &BuildReport{BuildID: id, Start: start, State: st}
}

func (r *BuildReport) recordStep(def StepDef, d time.Duration, res StepResult) {
	r.Steps = append(r.Steps, StepRecord{Name: def.Name, Weight: def.Weight, Duration: d, Result: res})
}

func (r *BuildReport) deriveOutcome(se *StepError) {
	switch {
	case se == nil && len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	case se == nil:
		r.Outcome = OutcomeSuccess
	case se.Kind == StepErrorCanceled:
		r.Outcome, r.FailedStep, r.Err = OutcomeCanceled, se.Step, se
	default:
		r.Outcome, r.FailedStep, r.Err = OutcomeFailed, se.Step, se
	}
}

// Duration is the wall time of the run.
func (r *BuildReport) Duration() time.Duration { return r.End.Sub(r.Start) }

// Executed lists the steps whose function ran, in order.
func (r *BuildReport) Executed() []StepName {
	out := make([]StepName, 0, len(r.Steps))
	for _, s := range r.Steps {
		if s.Result != StepResultCanceled {
			out = append(out, s.Name)
		}
	}
	return out
}

// Summary is a one-line description for logs and the CLI.
func (r *BuildReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "outcome=%s steps=%d duration=%s", r.Outcome, len(r.Executed()), r.Duration().Round(time.Millisecond))
	if r.FailedStep != "" {
		fmt.Fprintf(&b, " failed_step=%s", r.FailedStep)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, " warnings=%d", len(r.Warnings))
	}
	return b.String()
}
