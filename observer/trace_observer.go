package observer

import (
	"context"
	"sync"
	"time"

	"github.com/dcshock/runcase/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/dcshock/runcase"

// TraceObserver records one span per run and a child span per step. Spans of
// nested steps (e.g. call inside around) are nested the same way. Safe for
// concurrent runs; state is keyed by run ID.
type TraceObserver struct {
	tracer trace.Tracer

	mu   sync.Mutex
	runs map[string]*tracedRun
}

type tracedRun struct {
	ctx   context.Context
	span  trace.Span
	steps []trace.Span
	ctxs  []context.Context
}

// NewTraceObserver returns an observer using a tracer from tp, or from the
// global provider when tp is nil.
func NewTraceObserver(tp trace.TracerProvider) *TraceObserver {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TraceObserver{
		tracer: tp.Tracer(instrumentationName),
		runs:   make(map[string]*tracedRun),
	}
}

// BeforeRun implements usecase.Observer.
func (o *TraceObserver) BeforeRun(ctx context.Context, runID string, args []any) error {
	ctx, span := o.tracer.Start(ctx, "usecase.run",
		trace.WithAttributes(
			attribute.String("usecase.run_id", runID),
			attribute.Int("usecase.args", len(args)),
		),
	)
	o.mu.Lock()
	o.runs[runID] = &tracedRun{ctx: ctx, span: span}
	o.mu.Unlock()
	return nil
}

// AfterRun implements usecase.Observer.
func (o *TraceObserver) AfterRun(ctx context.Context, runID, name string, out usecase.Outcome, err error, d time.Duration) error {
	o.mu.Lock()
	run, ok := o.runs[runID]
	delete(o.runs, runID)
	o.mu.Unlock()
	if !ok {
		return nil
	}
	// Steps left open by a panic are closed with the run.
	for i := len(run.steps) - 1; i >= 0; i-- {
		run.steps[i].End()
	}
	if name != "" {
		run.span.SetName("usecase.run " + name)
		run.span.SetAttributes(attribute.String("usecase.name", name))
	}
	run.span.SetAttributes(attribute.String("usecase.outcome", out.Kind.String()))
	if err != nil {
		run.span.RecordError(err)
		run.span.SetStatus(codes.Error, err.Error())
	} else if out.Kind == usecase.Recovered && out.Err != nil {
		run.span.RecordError(out.Err)
	}
	run.span.End()
	return nil
}

// BeforeStep implements usecase.Observer.
func (o *TraceObserver) BeforeStep(ctx context.Context, runID string, step usecase.Step) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	run, ok := o.runs[runID]
	if !ok {
		return nil
	}
	parent := run.ctx
	if n := len(run.ctxs); n > 0 {
		parent = run.ctxs[n-1]
	}
	stepCtx, span := o.tracer.Start(parent, "usecase."+string(step),
		trace.WithAttributes(attribute.String("usecase.step", string(step))),
	)
	run.steps = append(run.steps, span)
	run.ctxs = append(run.ctxs, stepCtx)
	return nil
}

// AfterStep implements usecase.Observer.
func (o *TraceObserver) AfterStep(ctx context.Context, runID string, step usecase.Step, stepErr error, d time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	run, ok := o.runs[runID]
	if !ok || len(run.steps) == 0 {
		return nil
	}
	n := len(run.steps) - 1
	span := run.steps[n]
	run.steps, run.ctxs = run.steps[:n], run.ctxs[:n]
	if stepErr != nil {
		span.RecordError(stepErr)
		span.SetStatus(codes.Error, stepErr.Error())
	}
	span.End()
	return nil
}

// TraceWrapper returns a usecase.Wrapper that runs the guarded execution of a
// use case inside a span, so hooks see the span in their context. A nil tracer
// uses the global provider.
func TraceWrapper(tracer trace.Tracer) usecase.Wrapper {
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(ctx context.Context, name string, next func(context.Context) error) error {
		ctx, span := tracer.Start(ctx, "usecase "+name,
			trace.WithAttributes(attribute.String("usecase.name", name)),
		)
		defer span.End()
		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
