package usecase

import (
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// RunOptions is optional and used to attach an Observer, a RunID and
// cross-cutting Wrappers to a run. If Observer is set and RunID is empty, a
// new UUID is generated for the run.
type RunOptions struct {
	Observer Observer
	RunID    string
	// Wrappers enclose the guarded execution, outside the use case's own
	// Around. The first wrapper is the outermost.
	Wrappers []Wrapper
}

// Execute constructs a use case with factory(deps, args...) and drives it
// through its lifecycle. See the package documentation for the outcome rules.
func Execute(ctx context.Context, factory Factory, deps any, args ...any) (Outcome, error) {
	return ExecuteWith(ctx, factory, nil, deps, args...)
}

// ExecuteWith is Execute with run options. If opts is non-nil and
// opts.Observer is set, pre/post hooks are called for the run and each step.
//
// AfterRun sees every run that BeforeRun saw, including one that ends in a
// re-raised panic. If AfterRun fails after the run itself succeeded, the
// run's outcome is returned together with the "after run" error: the use case
// did execute, only the observer failed.
func ExecuteWith(ctx context.Context, factory Factory, opts *RunOptions, deps any, args ...any) (Outcome, error) {
	if factory == nil {
		return Outcome{}, ErrNilFactory
	}
	r := &run{}
	if opts != nil {
		r.obs = opts.Observer
		r.wrappers = opts.Wrappers
	}
	if r.obs == nil {
		return r.finish(r.execute(ctx, factory, deps, args))
	}
	r.runID = opts.RunID
	if r.runID == "" {
		r.runID = uuid.New().String()
	}
	ctx = context.WithValue(ctx, runMetaKey{}, runMeta{RunID: r.runID})
	if err := r.obs.BeforeRun(ctx, r.runID, args); err != nil {
		return Outcome{}, fmt.Errorf("before run: %w", err)
	}
	start := time.Now()
	out, err := r.execute(ctx, factory, deps, args)
	if postErr := r.obs.AfterRun(r.ctx(ctx), r.runID, r.caps.name, out, err, time.Since(start)); postErr != nil {
		// Don't mask the run error
		if err == nil {
			err = fmt.Errorf("after run: %w", postErr)
		}
	}
	return r.finish(out, err)
}

// state tracks how far the guarded body got.
type state int

const (
	statePending state = iota
	stateSkipped
	stateCompensated
	stateCompleted
)

// run holds everything for one execution. It is never reused.
type run struct {
	obs      Observer
	wrappers []Wrapper
	runID    string
	caps     capabilities
	state    state
	panicked bool
	// reraise is a recovered panic nobody handled. It is raised again once
	// observers have seen the end of the run.
	reraise *PanicError
}

func (r *run) ctx(ctx context.Context) context.Context {
	if r.obs == nil || r.caps.name == "" {
		return ctx
	}
	return context.WithValue(ctx, runMetaKey{}, runMeta{RunID: r.runID, Name: r.caps.name})
}

// execute runs the guarded part and routes any error to OnError when the use
// case has one. Without OnError errors are returned unchanged and recovered
// panics are kept for finish to re-raise.
func (r *run) execute(ctx context.Context, factory Factory, deps any, args []any) (Outcome, error) {
	out, err := r.guard(ctx, factory, deps, args)
	if err == nil {
		return out, nil
	}
	if r.caps.onError == nil {
		if p, ok := err.(*PanicError); ok && r.panicked {
			r.reraise = p
		}
		return Outcome{}, err
	}
	return r.intercept(r.ctx(ctx), err)
}

func (r *run) guard(ctx context.Context, factory Factory, deps any, args []any) (out Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.panicked = true
			out, err = Outcome{}, &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()

	var uc any
	err = r.step(ctx, StepConstruct, func(context.Context) error {
		var err error
		uc, err = factory(deps, args...)
		if err == nil && isNil(uc) {
			err = ErrNilUseCase
		}
		return err
	})
	if err != nil {
		return Outcome{}, err
	}
	r.caps = detect(uc)
	ctx = r.ctx(ctx)

	body := r.body
	if r.caps.around != nil {
		around := r.caps.around
		body = func(ctx context.Context) error {
			return r.step(ctx, StepAround, func(ctx context.Context) error {
				return around(ctx, r.body)
			})
		}
	}
	for i := len(r.wrappers) - 1; i >= 0; i-- {
		w, next := r.wrappers[i], body
		if w == nil {
			continue
		}
		body = func(ctx context.Context) error { return w(ctx, r.caps.name, next) }
	}
	if err := body(ctx); err != nil {
		return Outcome{}, err
	}

	switch r.state {
	case stateCompleted:
		return r.result(ctx)
	case stateSkipped:
		return notCompleted(Skipped), nil
	case stateCompensated:
		return notCompleted(Compensated), nil
	default:
		return notCompleted(Incomplete), nil
	}
}

// body is the guarded execution: preconditions, call, postconditions and the
// fallback policy.
func (r *run) body(ctx context.Context) error {
	ok, err := r.check(ctx, StepPreconditions, r.caps.preconditions)
	if err != nil {
		return err
	}
	if !ok {
		r.settle(stateSkipped)
		return nil
	}
	call := r.caps.call
	if call == nil {
		call = func(context.Context) error { return fmt.Errorf("%s: %w", r.caps.name, ErrCallMissing) }
	}
	if err := r.step(ctx, StepCall, call); err != nil {
		return err
	}
	ok, err = r.check(ctx, StepPostconditions, r.caps.postconditions)
	if err != nil {
		return err
	}
	if ok {
		r.settle(stateCompleted)
		return nil
	}
	if r.caps.fallback == nil {
		return &PostconditionsFailedError{UseCase: r.caps.name}
	}
	if err := r.step(ctx, StepFallback, r.caps.fallback); err != nil {
		return err
	}
	r.settle(stateCompensated)
	return nil
}

// settle records how a pass through the body ended. Completed is final, so an
// Around that calls next again cannot undo it.
func (r *run) settle(s state) {
	if r.state != stateCompleted {
		r.state = s
	}
}

// check evaluates an optional condition; absent conditions hold.
func (r *run) check(ctx context.Context, s Step, cond func(context.Context) (bool, error)) (bool, error) {
	if cond == nil {
		return true, nil
	}
	var ok bool
	err := r.step(ctx, s, func(ctx context.Context) error {
		var err error
		ok, err = cond(ctx)
		return err
	})
	return ok, err
}

func (r *run) result(ctx context.Context) (Outcome, error) {
	if r.caps.result == nil {
		return completed(true), nil
	}
	var v any
	err := r.step(ctx, StepResult, func(ctx context.Context) error {
		var err error
		v, err = r.caps.result(ctx)
		return err
	})
	if err != nil {
		return Outcome{}, err
	}
	return completed(v), nil
}

// intercept hands cause to OnError. Errors (and panics) from OnError itself
// propagate to the caller.
func (r *run) intercept(ctx context.Context, cause error) (out Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.reraise = &PanicError{Value: p, Stack: debug.Stack()}
			out, err = Outcome{}, r.reraise
		}
	}()
	var v any
	err = r.step(ctx, StepOnError, func(ctx context.Context) error {
		var err error
		v, err = r.caps.onError(ctx, cause)
		return err
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Recovered, Value: v, Err: cause}, nil
}

// finish re-raises an unhandled panic with its original value.
func (r *run) finish(out Outcome, err error) (Outcome, error) {
	if r.reraise != nil {
		panic(r.reraise.Value)
	}
	return out, err
}

// step runs fn with observer hooks (when an Observer is set).
func (r *run) step(ctx context.Context, s Step, fn func(context.Context) error) error {
	if r.obs == nil {
		return fn(ctx)
	}
	if err := r.obs.BeforeStep(ctx, r.runID, s); err != nil {
		return fmt.Errorf("before %s: %w", s, err)
	}
	start := time.Now()
	err := fn(ctx)
	if postErr := r.obs.AfterStep(ctx, r.runID, s, err, time.Since(start)); postErr != nil {
		if err == nil {
			err = fmt.Errorf("after %s: %w", s, postErr)
		}
	}
	return err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
