package usecase

import (
	"context"
	"errors"
)

// spy is the collaborator handed to test use cases; it records every call in order.
type spy struct {
	calls []string
	args  [][]any
}

func (s *spy) record(name string, args ...any) {
	s.calls = append(s.calls, name)
	s.args = append(s.args, args)
}

func (s *spy) count(name string) int {
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

// --- use cases ---

type SimpleUseCase struct {
	spy   *spy
	count int
}

func newSimpleUseCase(deps any, args ...any) (any, error) {
	return &SimpleUseCase{spy: deps.(*spy), count: args[0].(int)}, nil
}

func (uc *SimpleUseCase) Call(ctx context.Context) error {
	uc.spy.record("other_use_case", uc.count+1)
	return nil
}

type UseCaseWithPreconditions struct {
	spy     *spy
	success bool
}

func newUseCaseWithPreconditions(deps any, args ...any) (any, error) {
	return &UseCaseWithPreconditions{spy: deps.(*spy), success: args[0].(bool)}, nil
}

func (uc *UseCaseWithPreconditions) Preconditions(ctx context.Context) (bool, error) {
	return uc.success, nil
}

func (uc *UseCaseWithPreconditions) Call(ctx context.Context) error {
	uc.spy.record("called")
	return nil
}

type UseCaseWithPostconditions struct {
	success bool
}

func newUseCaseWithPostconditions(deps any, args ...any) (any, error) {
	return &UseCaseWithPostconditions{success: args[0].(bool)}, nil
}

func (uc *UseCaseWithPostconditions) Call(ctx context.Context) error { return nil }

func (uc *UseCaseWithPostconditions) Postconditions(ctx context.Context) (bool, error) {
	return uc.success, nil
}

type UseCaseWithPostconditionsAndFallback struct {
	spy     *spy
	success bool
}

func newUseCaseWithPostconditionsAndFallback(deps any, args ...any) (any, error) {
	return &UseCaseWithPostconditionsAndFallback{spy: deps.(*spy), success: args[0].(bool)}, nil
}

func (uc *UseCaseWithPostconditionsAndFallback) Call(ctx context.Context) error { return nil }

func (uc *UseCaseWithPostconditionsAndFallback) Postconditions(ctx context.Context) (bool, error) {
	return uc.success, nil
}

func (uc *UseCaseWithPostconditionsAndFallback) Fallback(ctx context.Context) error {
	uc.spy.record("fallback_called")
	return nil
}

type UseCaseWithResult struct {
	count int
}

func newUseCaseWithResult(deps any, args ...any) (any, error) {
	return &UseCaseWithResult{count: args[0].(int)}, nil
}

func (uc *UseCaseWithResult) Call(ctx context.Context) error {
	uc.count++
	return nil
}

func (uc *UseCaseWithResult) Result(ctx context.Context) (any, error) { return uc.count, nil }

type UseCaseWithAround struct {
	spy *spy
}

func newUseCaseWithAround(deps any, args ...any) (any, error) {
	return &UseCaseWithAround{spy: deps.(*spy)}, nil
}

func (uc *UseCaseWithAround) Around(ctx context.Context, next func(context.Context) error) error {
	uc.spy.record("before")
	if err := next(ctx); err != nil {
		return err
	}
	uc.spy.record("after")
	return nil
}

func (uc *UseCaseWithAround) Preconditions(ctx context.Context) (bool, error) {
	uc.spy.record("preconditions")
	return true, nil
}

func (uc *UseCaseWithAround) Call(ctx context.Context) error {
	uc.spy.record("called")
	return nil
}

func (uc *UseCaseWithAround) Postconditions(ctx context.Context) (bool, error) {
	uc.spy.record("postconditions")
	return true, nil
}

func (uc *UseCaseWithAround) Result(ctx context.Context) (any, error) {
	uc.spy.record("result")
	return "wrapped", nil
}

var errSpecial = errors.New("special")

type UseCaseWithRescue struct {
	spy *spy
}

func newUseCaseWithRescue(deps any, args ...any) (any, error) {
	return &UseCaseWithRescue{spy: deps.(*spy)}, nil
}

func (uc *UseCaseWithRescue) Call(ctx context.Context) error { return errSpecial }

func (uc *UseCaseWithRescue) OnError(ctx context.Context, err error) (any, error) {
	uc.spy.record("rescued", err)
	return "rescued", nil
}

// failing returns a factory for a *Hooks use case whose Call returns err.
func failing(err error) Factory {
	return func(deps any, args ...any) (any, error) {
		return &Hooks{Name: "Failing", Call: func(context.Context) error { return err }}, nil
	}
}

type renamed struct{}

func (renamed) UseCaseName() string { return "accounts.Renamed" }

func (renamed) Call(ctx context.Context) error { return nil }

func (renamed) Postconditions(ctx context.Context) (bool, error) { return false, nil }
