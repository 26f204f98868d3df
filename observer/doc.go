// Package observer provides usecase.Observer implementations.
//
//   - LogObserver: writes run and step events to a github.com/charmbracelet/log
//     logger (run_id, use_case, step, outcome, duration).
//   - TraceObserver: records an OpenTelemetry span per run with a child span
//     per step, using the global tracer provider unless one is given.
//   - TraceWrapper: a usecase.Wrapper that puts the guarded execution inside a
//     span, so use case hooks can start child spans from their context.
//
// Combine observers with usecase.MultiObserver, or register them by name in a
// config.ObserverRegistry so domains can select them from YAML.
package observer
