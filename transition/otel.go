package transition

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "transition"

// Span outcomes.
const (
	outcomeCommitted  = "committed"
	outcomeSuperseded = "superseded"
	outcomeClosed     = "closed"
)

// startTransitionSpan opens the span covering one request, from arming to
// commit, supersession or teardown. The caller ends it via endTransitionSpan.
//
//nolint:spancheck // Span lifecycle managed by the controller
func startTransitionSpan(
	ctx context.Context,
	ctrl *Controller,
	shouldMount bool,
	duration, effective time.Duration,
	reducedMotion bool,
) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "transition."+direction(shouldMount))
	span.SetAttributes(
		attribute.String("controller_id", ctrl.id),
		attribute.String("element", sanitizeElement(ctrl.name)),
		attribute.String("direction", direction(shouldMount)),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.Int64("effective_duration_ms", effective.Milliseconds()),
		attribute.Bool("reduced_motion", reducedMotion),
	)

	return ctx, span
}

func endTransitionSpan(span trace.Span, outcome string, status Status) {
	if span == nil {
		return
	}

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.String("status", status.String()),
	)

	if outcome == outcomeCommitted {
		span.SetStatus(codes.Ok, outcome)
	}

	span.End()
}
