package observer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dcshock/runcase/usecase"
)

// LogObserver writes run and step events to a charmbracelet logger. Run
// starts and steps are logged at debug, finished runs at info, recovered runs
// and failed steps at warn, failed runs at error.
type LogObserver struct {
	logger *log.Logger
}

// NewLogObserver returns an Observer that logs to logger (log.Default() if nil).
func NewLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{logger: logger}
}

// NewLogger returns a logfmt logger writing to w with the given prefix and
// level name ("debug", "info", "warn", "error").
func NewLogger(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	}), nil
}

// BeforeRun implements usecase.Observer.
func (o *LogObserver) BeforeRun(ctx context.Context, runID string, args []any) error {
	o.logger.Debug("run started", "run_id", runID, "args", len(args))
	return nil
}

// AfterRun implements usecase.Observer.
func (o *LogObserver) AfterRun(ctx context.Context, runID, name string, out usecase.Outcome, err error, d time.Duration) error {
	switch {
	case err != nil:
		o.logger.Error("run failed", "run_id", runID, "use_case", name, "err", err, "duration", d)
	case out.Kind == usecase.Recovered:
		o.logger.Warn("run recovered", "run_id", runID, "use_case", name, "err", out.Err, "duration", d)
	default:
		o.logger.Info("run finished", "run_id", runID, "use_case", name, "outcome", out.Kind.String(), "duration", d)
	}
	return nil
}

// BeforeStep implements usecase.Observer.
func (o *LogObserver) BeforeStep(ctx context.Context, runID string, step usecase.Step) error {
	o.logger.Debug("step started", "run_id", runID, "step", string(step))
	return nil
}

// AfterStep implements usecase.Observer.
func (o *LogObserver) AfterStep(ctx context.Context, runID string, step usecase.Step, stepErr error, d time.Duration) error {
	if stepErr != nil {
		name, _ := usecase.NameFromContext(ctx)
		o.logger.Warn("step failed", "run_id", runID, "use_case", name, "step", string(step), "err", stepErr, "duration", d)
		return nil
	}
	o.logger.Debug("step finished", "run_id", runID, "step", string(step), "duration", d)
	return nil
}
