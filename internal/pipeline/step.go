package pipeline

import (
	"context"
	"fmt"
)

// Step is one unit of work in a build.
type Step func(ctx context.Context, st *State) error

// StepName identifies a step. Names are unique within a pipeline.
type StepName string

// StepDef describes a registered step.
type StepDef struct {
	Name        StepName
	Weight      int
	Description string
	Fn          Step

	// offset is set for pinned steps.
	offset int
}

// Pinned reports whether the step is kept at the end of the run.
func (d StepDef) Pinned() bool { return d.offset > 0 }

// StepErrorKind classifies a step failure.
type StepErrorKind string

const (
	StepErrorFatal    StepErrorKind = "fatal"    // run aborts
	StepErrorWarning  StepErrorKind = "warning"  // recorded, run continues
	StepErrorCanceled StepErrorKind = "canceled" // context canceled before the step
)

// StepError names the step that failed and wraps the cause unchanged.
type StepError struct {
	Kind StepErrorKind
	Step StepName
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s step %s: %v", e.Kind, e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

func NewFatalStepError(step StepName, err error) *StepError {
	return &StepError{Kind: StepErrorFatal, Step: step, Err: err}
}

func NewCanceledStepError(step StepName, err error) *StepError {
	return &StepError{Kind: StepErrorCanceled, Step: step, Err: err}
}

// Warn marks err as recovered. A step returning it is recorded with a warning
// and the run continues.
func Warn(step StepName, err error) *StepError {
	return &StepError{Kind: StepErrorWarning, Step: step, Err: err}
}

// StepResult is the outcome of one executed step.
type StepResult string

const (
	StepResultSuccess  StepResult = "success"
	StepResultWarning  StepResult = "warning"
	StepResultFatal    StepResult = "fatal"
	StepResultCanceled StepResult = "canceled"
)
