package transition

import (
	"testing"
	"time"

	"github.com/amp-labs/amp-transition/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer creates a test tracer with an in-memory exporter.
func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
	)

	oldProvider := otel.GetTracerProvider()

	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		otel.SetTracerProvider(oldProvider)
	})

	return exporter
}

func spanAttrs(span tracetest.SpanStub) map[string]any {
	attrMap := make(map[string]any)
	for _, attr := range span.Attributes {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}

	return attrMap
}

// TestTransitionSpans verifies one span per request, ended with its outcome.
// Note: Cannot use t.Parallel() because setupTestTracer modifies global OTEL tracer provider.
//
//nolint:paralleltest // Test modifies global OTEL tracer provider
func TestTransitionSpans(t *testing.T) {
	exporter := setupTestTracer(t)

	clock := scheduler.NewVirtual(epoch)
	ctrl := New(false, clock, WithName("spans"), WithID("ctrl-1"), WithLogger(nil))

	ctrl.RequestVisibility(t.Context(), true, 100*time.Millisecond, true)
	clock.Advance(10 * time.Millisecond)
	ctrl.RequestVisibility(t.Context(), false, 100*time.Millisecond, false)
	clock.Advance(100 * time.Millisecond)
	ctrl.RequestVisibility(t.Context(), true, 100*time.Millisecond, false)
	require.NoError(t, ctrl.Close())

	spans := exporter.GetSpans()
	require.Len(t, spans, 3)

	enter := spans[0]
	assert.Equal(t, "transition.enter", enter.Name)

	attrs := spanAttrs(enter)
	assert.Equal(t, "ctrl-1", attrs["controller_id"])
	assert.Equal(t, "spans", attrs["element"])
	assert.Equal(t, int64(100), attrs["duration_ms"])
	assert.Equal(t, int64(0), attrs["effective_duration_ms"])
	assert.Equal(t, true, attrs["reduced_motion"])
	assert.Equal(t, outcomeSuperseded, attrs["outcome"])

	exit := spans[1]
	assert.Equal(t, "transition.exit", exit.Name)
	assert.Equal(t, outcomeCommitted, spanAttrs(exit)["outcome"])
	assert.Equal(t, "exited", spanAttrs(exit)["status"])
	assert.Equal(t, codes.Ok, exit.Status.Code)

	closed := spans[2]
	assert.Equal(t, "transition.enter", closed.Name)
	assert.Equal(t, outcomeClosed, spanAttrs(closed)["outcome"])
}
