package usecase

import (
	"errors"
	"fmt"
)

// ErrPostconditionsFailed matches (via errors.Is) every *PostconditionsFailedError.
var ErrPostconditionsFailed = errors.New("postconditions failed")

// ErrCallMissing is raised when preconditions pass but the use case has no Call.
var ErrCallMissing = errors.New("use case does not implement Call")

// ErrNilUseCase is raised when a factory returns neither a use case nor an error.
var ErrNilUseCase = errors.New("factory returned a nil use case")

// ErrNilFactory is returned by Execute when no factory is given.
var ErrNilFactory = errors.New("nil use case factory")

// PostconditionsFailedError is raised when postconditions return false and the
// use case has no Fallback.
type PostconditionsFailedError struct {
	UseCase string
}

func (e *PostconditionsFailedError) Error() string {
	return fmt.Sprintf("Postconditions were not met after executing %s.", e.UseCase)
}

func (e *PostconditionsFailedError) Is(target error) bool { return target == ErrPostconditionsFailed }

func IsPostconditionsFailed(err error) bool { return errors.Is(err, ErrPostconditionsFailed) }

// PanicError carries a panic recovered during a run. It is only ever seen by
// OnError: without an ErrorHandler the original panic value is re-raised.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
