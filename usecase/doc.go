// Package usecase drives a single unit of business logic (a use case) through
// an optional guard/verification/compensation protocol:
//
//	construct -> [Around ->] Preconditions -> Call -> Postconditions -> [Fallback] -> Result
//
// A use case is any value returned by a Factory. Its capabilities are optional
// Go interfaces (Arounder, Preconditioner, Caller, Postconditioner, Fallbacker,
// Resulter, ErrorHandler), detected once right after construction. A *Hooks
// value can be returned instead when a struct with func fields is more
// convenient than a named type.
//
// Execute returns an Outcome:
//
//   - Completed: preconditions and postconditions held (or were absent). Value
//     is Result() when implemented, true otherwise.
//   - Skipped: preconditions returned false. Call never ran. Value is false.
//   - Compensated: postconditions returned false and Fallback ran. Value is false.
//   - Incomplete: Around returned without letting the guarded body finish. Value is false.
//   - Recovered: an error was intercepted by OnError. Value is OnError's return.
//
// When postconditions fail and the use case has no Fallback, the run fails
// with a *PostconditionsFailedError. Every error raised during the run
// (construction, any hook, the postconditions failure itself, and panics)
// is funnelled to one interception point: if the use case implements
// ErrorHandler the error is handed to OnError and does not propagate,
// otherwise it is returned to the caller unchanged (panics are re-raised).
//
// Optional pre/post hooks (Observer) and cross-cutting wrappers (Wrapper) are
// attached through RunOptions and ExecuteWith. When an Observer is set and
// RunOptions.RunID is empty, a UUID is generated for the run; the run ID and
// use case name are available to hooks via RunIDFromContext and NameFromContext.
package usecase
