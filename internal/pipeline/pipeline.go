package pipeline

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Pipeline owns the registered steps and runs them.
type Pipeline struct {
	defs     []StepDef
	observer Observer
	now      func() time.Time
	newID    func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver adds observers. Several observers are called in order.
func WithObserver(obs ...Observer) Option {
	return func(p *Pipeline) {
		all := append([]Observer{p.observer}, obs...)
		p.observer = MultiObserver(all)
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithBuildID replaces the build id generator.
func WithBuildID(fn func() string) Option {
	return func(p *Pipeline) { p.newID = fn }
}

// NewPipeline returns an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		defs:     make([]StepDef, 0, 16),
		observer: NoopObserver{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register adds a step. Registering a name twice is an error.
func (p *Pipeline) Register(def StepDef) error {
	if def.Name == "" || def.Fn == nil {
		return ErrInvalidStep.WithContext("step", string(def.Name))
	}
	if p.has(def.Name) {
		return ErrDuplicateStep.WithContext("step", string(def.Name))
	}
	def.offset = 0
	p.defs = append(p.defs, def)
	p.repin()
	return nil
}

// RegisterPinned adds a step that runs after every unpinned step. Its weight
// is the highest unpinned weight plus offset, kept current as steps are added.
// The sum saturates at math.MaxInt; saturated pinned steps still run in
// offset order.
func (p *Pipeline) RegisterPinned(name StepName, offset int, description string, fn Step) error {
	if offset <= 0 || name == "" || fn == nil {
		return ErrInvalidStep.WithContext("step", string(name))
	}
	if p.has(name) {
		return ErrDuplicateStep.WithContext("step", string(name))
	}
	p.defs = append(p.defs, StepDef{Name: name, Description: description, Fn: fn, offset: offset})
	p.repin()
	return nil
}

func (p *Pipeline) has(name StepName) bool {
	return slices.ContainsFunc(p.defs, func(d StepDef) bool { return d.Name == name })
}

func (p *Pipeline) repin() {
	highest, found := math.MinInt, false
	for _, d := range p.defs {
		if !d.Pinned() && d.Weight > highest {
			highest, found = d.Weight, true
		}
	}
	if !found {
		highest = 0
	}
	for i := range p.defs {
		if p.defs[i].Pinned() {
			p.defs[i].Weight = pinnedWeight(highest, p.defs[i].offset)
		}
	}
}

func pinnedWeight(highest, offset int) int {
	if highest > math.MaxInt-offset {
		return math.MaxInt
	}
	return highest + offset
}

// compareSteps orders by weight, then by pin offset. Unpinned steps have
// offset 0, so a pinned step never sorts before an unpinned one of equal weight.
func compareSteps(a, b StepDef) int {
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return cmp.Compare(a.offset, b.offset)
}

// Steps returns the steps in execution order.
func (p *Pipeline) Steps() []StepDef {
	out := slices.Clone(p.defs)
	slices.SortStableFunc(out, compareSteps)
	return out
}

// Run executes the steps in order against st and stops at the first failure.
// The returned error is a *StepError naming the failed step; st keeps every
// value written up to that point. Nothing is rolled back.
func (p *Pipeline) Run(ctx context.Context, st *State) (*BuildReport, error) {
	if st == nil {
		st = NewState()
	}
	report := newBuildReport(p.newID(), p.now(), st)
	p.observer.OnBuildStart(report)

	for _, def := range p.Steps() {
		if err := ctx.Err(); err != nil {
			se := NewCanceledStepError(def.Name, err)
			report.recordStep(def, 0, StepResultCanceled)
			p.observer.OnStepComplete(report, def.Name, 0, StepResultCanceled, se)
			return p.finish(report, se)
		}

		p.observer.OnStepStart(report, def.Name)
		t0 := p.now()
		err := def.Fn(ctx, st)
		dur := p.now().Sub(t0)

		var se *StepError
		switch {
		case err == nil:
			report.recordStep(def, dur, StepResultSuccess)
			p.observer.OnStepComplete(report, def.Name, dur, StepResultSuccess, nil)
		case errors.As(err, &se) && se.Kind == StepErrorWarning:
			report.recordStep(def, dur, StepResultWarning)
			report.Warnings = append(report.Warnings, se)
			p.observer.OnStepComplete(report, def.Name, dur, StepResultWarning, se)
		default:
			se = NewFatalStepError(def.Name, err)
			report.recordStep(def, dur, StepResultFatal)
			p.observer.OnStepComplete(report, def.Name, dur, StepResultFatal, se)
			return p.finish(report, se)
		}
	}
	return p.finish(report, nil)
}

func (p *Pipeline) finish(report *BuildReport, se *StepError) (*BuildReport, error) {
	report.End = p.now()
	report.deriveOutcome(se)
	p.observer.OnBuildComplete(report)
	if se != nil {
		return report, se
	}
	return report, nil
}
