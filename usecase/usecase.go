package usecase

import (
	"context"
	"reflect"
)

// Factory constructs a fresh use case instance for one run. deps is the
// caller's collaborator (for a domain, the host object) and is passed through
// untouched; args are the run arguments.
type Factory func(deps any, args ...any) (any, error)

// Caller is the main body of a use case.
type Caller interface {
	Call(ctx context.Context) error
}

// Arounder wraps the guarded execution. Implementations must invoke next for
// preconditions, Call and postconditions to run.
type Arounder interface {
	Around(ctx context.Context, next func(context.Context) error) error
}

// Preconditioner guards Call. Returning false skips the rest of the run.
type Preconditioner interface {
	Preconditions(ctx context.Context) (bool, error)
}

// Postconditioner validates the effect of Call.
type Postconditioner interface {
	Postconditions(ctx context.Context) (bool, error)
}

// Fallbacker compensates when postconditions fail.
type Fallbacker interface {
	Fallback(ctx context.Context) error
}

// Resulter supplies the outcome value of a completed run.
type Resulter interface {
	Result(ctx context.Context) (any, error)
}

// ErrorHandler intercepts any error raised during the run. Its return value
// becomes the outcome.
type ErrorHandler interface {
	OnError(ctx context.Context, err error) (any, error)
}

// Namer overrides the display name used in errors, logs and spans.
type Namer interface {
	UseCaseName() string
}

// Hooks is a use case built from funcs. Every non-nil field is a capability;
// nil fields are treated as absent, exactly like a type that does not
// implement the corresponding interface. A factory may return Hooks or *Hooks.
type Hooks struct {
	Name           string
	Around         func(ctx context.Context, next func(context.Context) error) error
	Preconditions  func(ctx context.Context) (bool, error)
	Call           func(ctx context.Context) error
	Postconditions func(ctx context.Context) (bool, error)
	Fallback       func(ctx context.Context) error
	Result         func(ctx context.Context) (any, error)
	OnError        func(ctx context.Context, err error) (any, error)
}

// capabilities is the capability set of one instance, resolved once after
// construction and fixed for the rest of the run.
type capabilities struct {
	name           string
	around         func(context.Context, func(context.Context) error) error
	preconditions  func(context.Context) (bool, error)
	call           func(context.Context) error
	postconditions func(context.Context) (bool, error)
	fallback       func(context.Context) error
	result         func(context.Context) (any, error)
	onError        func(context.Context, error) (any, error)
}

func detect(uc any) capabilities {
	h, ok := uc.(*Hooks)
	if v, byValue := uc.(Hooks); byValue {
		h, ok = &v, true
	}
	if ok {
		name := h.Name
		if name == "" {
			name = "Hooks"
		}
		return capabilities{
			name:           name,
			around:         h.Around,
			preconditions:  h.Preconditions,
			call:           h.Call,
			postconditions: h.Postconditions,
			fallback:       h.Fallback,
			result:         h.Result,
			onError:        h.OnError,
		}
	}
	c := capabilities{name: Name(uc)}
	if v, ok := uc.(Arounder); ok {
		c.around = v.Around
	}
	if v, ok := uc.(Preconditioner); ok {
		c.preconditions = v.Preconditions
	}
	if v, ok := uc.(Caller); ok {
		c.call = v.Call
	}
	if v, ok := uc.(Postconditioner); ok {
		c.postconditions = v.Postconditions
	}
	if v, ok := uc.(Fallbacker); ok {
		c.fallback = v.Fallback
	}
	if v, ok := uc.(Resulter); ok {
		c.result = v.Result
	}
	if v, ok := uc.(ErrorHandler); ok {
		c.onError = v.OnError
	}
	return c
}

// Name returns the display name of a use case instance: UseCaseName() when it
// implements Namer, Hooks.Name for Hooks, otherwise the Go type name with
// pointers stripped (e.g. "*accounts.OpenAccount" -> "OpenAccount").
func Name(uc any) string {
	switch v := uc.(type) {
	case nil:
		return "<nil>"
	case Namer:
		return v.UseCaseName()
	case *Hooks:
		if v.Name != "" {
			return v.Name
		}
		return "Hooks"
	case Hooks:
		if v.Name != "" {
			return v.Name
		}
		return "Hooks"
	}
	t := reflect.TypeOf(uc)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
