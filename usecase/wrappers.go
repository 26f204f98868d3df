package usecase

import (
	"context"
	"time"
)

// Wrapper is a cross-cutting wrapper around the guarded execution of a use
// case. name is the use case's display name. A Wrapper must call next for the
// use case to run; whatever it returns is treated like an error raised by the
// use case itself.
type Wrapper func(ctx context.Context, name string, next func(context.Context) error) error

// Timeout returns a wrapper that runs the use case with a context deadline of
// now+d. Hooks that honour ctx see context.DeadlineExceeded once it expires;
// the executor itself never interrupts a hook. A non-positive d is a no-op.
func Timeout(d time.Duration) Wrapper {
	return func(ctx context.Context, _ string, next func(context.Context) error) error {
		if d <= 0 {
			return next(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx)
	}
}

// Tap returns a wrapper that calls before and after around the use case
// without changing its behaviour. after receives the error of the guarded
// execution. Either func may be nil.
func Tap(before func(ctx context.Context, name string), after func(ctx context.Context, name string, err error)) Wrapper {
	return func(ctx context.Context, name string, next func(context.Context) error) error {
		if before != nil {
			before(ctx, name)
		}
		err := next(ctx)
		if after != nil {
			after(ctx, name, err)
		}
		return err
	}
}

// Chain combines wrappers into one; the first is the outermost.
func Chain(wrappers ...Wrapper) Wrapper {
	return func(ctx context.Context, name string, next func(context.Context) error) error {
		run := next
		for i := len(wrappers) - 1; i >= 0; i-- {
			w, inner := wrappers[i], run
			if w == nil {
				continue
			}
			run = func(ctx context.Context) error { return w(ctx, name, inner) }
		}
		return run(ctx)
	}
}
