package transition

import (
	"context"
	"log/slog"
	"time"
)

// Logger provides logging hooks for controller activity.
type Logger interface {
	VisibilityRequested(ctx context.Context, id string, from, to Status, duration, effective time.Duration)
	TransitionSuperseded(ctx context.Context, id string, status Status, pendingFor time.Duration)
	TransitionCommitted(ctx context.Context, id string, status Status, elapsed time.Duration)
	ControllerClosed(ctx context.Context, id string, status Status, hadPending bool)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default().
func NewDefaultLogger() *DefaultLogger {
	return NewSlogLogger(slog.Default())
}

// NewSlogLogger creates a logger backed by the given slog logger.
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &DefaultLogger{
		logger: logger,
	}
}

// VisibilityRequested logs a request at debug level.
func (l *DefaultLogger) VisibilityRequested(
	ctx context.Context, id string, from, to Status, duration, effective time.Duration,
) {
	l.logger.DebugContext(ctx, "Visibility requested",
		"controller_id", id,
		"from", from,
		"to", to,
		"duration_ms", duration.Milliseconds(),
		"effective_duration_ms", effective.Milliseconds(),
	)
}

// TransitionSuperseded logs a cancelled commit at info level.
func (l *DefaultLogger) TransitionSuperseded(ctx context.Context, id string, status Status, pendingFor time.Duration) {
	l.logger.InfoContext(ctx, "Transition superseded",
		"controller_id", id,
		"status", status,
		"pending_ms", pendingFor.Milliseconds(),
	)
}

// TransitionCommitted logs a settled status at debug level.
func (l *DefaultLogger) TransitionCommitted(ctx context.Context, id string, status Status, elapsed time.Duration) {
	l.logger.DebugContext(ctx, "Transition committed",
		"controller_id", id,
		"status", status,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// ControllerClosed logs teardown; at info level when a commit was cancelled.
func (l *DefaultLogger) ControllerClosed(ctx context.Context, id string, status Status, hadPending bool) {
	if hadPending {
		l.logger.InfoContext(ctx, "Controller closed with pending commit",
			"controller_id", id,
			"status", status,
		)

		return
	}

	l.logger.DebugContext(ctx, "Controller closed",
		"controller_id", id,
		"status", status,
	)
}

// nopLogger drops everything.
type nopLogger struct{}

func (nopLogger) VisibilityRequested(context.Context, string, Status, Status, time.Duration, time.Duration) {}
func (nopLogger) TransitionSuperseded(context.Context, string, Status, time.Duration) {}
func (nopLogger) TransitionCommitted(context.Context, string, Status, time.Duration) {}
func (nopLogger) ControllerClosed(context.Context, string, Status, bool) {}
