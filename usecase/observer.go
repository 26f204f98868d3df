package usecase

import (
	"context"
	"time"
)

// Step names a phase of a run, as reported to an Observer.
type Step string

const (
	StepConstruct      Step = "construct"
	StepAround         Step = "around"
	StepPreconditions  Step = "preconditions"
	StepCall           Step = "call"
	StepPostconditions Step = "postconditions"
	StepFallback       Step = "fallback"
	StepResult         Step = "result"
	StepOnError        Step = "on_error"
)

// Observer provides pre/post hooks for a run and each of its steps, e.g. for
// logging or tracing. BeforeRun is called before the use case is constructed;
// an error from it aborts the run. BeforeStep/AfterStep are called around each
// step that the use case actually has; their errors are treated as errors of
// that step. AfterRun is called last, with the final outcome and error. Steps
// are reported nested: the around step encloses preconditions, call,
// postconditions and fallback.
type Observer interface {
	BeforeRun(ctx context.Context, runID string, args []any) error
	AfterRun(ctx context.Context, runID, name string, out Outcome, err error, duration time.Duration) error
	BeforeStep(ctx context.Context, runID string, step Step) error
	AfterStep(ctx context.Context, runID string, step Step, stepErr error, duration time.Duration) error
}

// MultiObserver fans hooks out to every non-nil observer in order. All
// observers are called; the first error is returned.
func MultiObserver(observers ...Observer) Observer {
	list := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) BeforeRun(ctx context.Context, runID string, args []any) error {
	var first error
	for _, o := range m {
		if err := o.BeforeRun(ctx, runID, args); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multiObserver) AfterRun(ctx context.Context, runID, name string, out Outcome, err error, d time.Duration) error {
	var first error
	for _, o := range m {
		if postErr := o.AfterRun(ctx, runID, name, out, err, d); postErr != nil && first == nil {
			first = postErr
		}
	}
	return first
}

func (m multiObserver) BeforeStep(ctx context.Context, runID string, step Step) error {
	var first error
	for _, o := range m {
		if err := o.BeforeStep(ctx, runID, step); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multiObserver) AfterStep(ctx context.Context, runID string, step Step, stepErr error, d time.Duration) error {
	var first error
	for _, o := range m {
		if err := o.AfterStep(ctx, runID, step, stepErr, d); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// context keys for run metadata (injected when an Observer is set)
type runMetaKey struct{}

type runMeta struct {
	RunID, Name string
}

func runMetaFromContext(ctx context.Context) (runMeta, bool) {
	m, ok := ctx.Value(runMetaKey{}).(runMeta)
	return m, ok
}

// RunIDFromContext returns the ID of the run executing ctx. It is only set
// when the run has an Observer.
func RunIDFromContext(ctx context.Context) (string, bool) {
	m, ok := runMetaFromContext(ctx)
	return m.RunID, ok && m.RunID != ""
}

// NameFromContext returns the display name of the use case executing ctx,
// once it has been constructed. It is only set when the run has an Observer.
func NameFromContext(ctx context.Context) (string, bool) {
	m, ok := runMetaFromContext(ctx)
	return m.Name, ok && m.Name != ""
}
