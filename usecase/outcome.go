package usecase

// Kind tells which branch of the run produced an Outcome.
type Kind int

const (
	// Failed is the zero Kind, returned alongside a non-nil error.
	Failed Kind = iota
	Completed
	Skipped
	Compensated
	Incomplete
	Recovered
)

func (k Kind) String() string {
	switch k {
	case Failed:
		return "failed"
	case Completed:
		return "completed"
	case Skipped:
		return "skipped"
	case Compensated:
		return "compensated"
	case Incomplete:
		return "incomplete"
	case Recovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Outcome is the result of one run. Value is Result() (or true) for Completed,
// false for Skipped, Compensated and Incomplete, and OnError's return value for
// Recovered. Err is the intercepted error when Kind is Recovered.
type Outcome struct {
	Kind  Kind
	Value any
	Err   error
}

func completed(v any) Outcome { return Outcome{Kind: Completed, Value: v} }

func notCompleted(k Kind) Outcome { return Outcome{Kind: k, Value: false} }

// Succeeded reports whether the run completed normally.
func (o Outcome) Succeeded() bool { return o.Kind == Completed }

// Truthy reports whether Value is neither nil nor false.
func (o Outcome) Truthy() bool {
	if o.Value == nil {
		return false
	}
	b, ok := o.Value.(bool)
	return !ok || b
}
