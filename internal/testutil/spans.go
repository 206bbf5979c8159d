package testutil

import (
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	spanRecorder = tracetest.NewSpanRecorder()
	installOnce  sync.Once
)

// RecordSpans installs an in-memory tracer provider once per test binary and
// returns a func yielding the spans ended since the call
func RecordSpans(t *testing.T) func() []sdktrace.ReadOnlySpan {
	t.Helper()
	installOnce.Do(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder)))
	})
	start := len(spanRecorder.Ended())
	return func() []sdktrace.ReadOnlySpan {
		return spanRecorder.Ended()[start:]
	}
}

// SpanNames lists span names in end order
func SpanNames(spans []sdktrace.ReadOnlySpan) []string {
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	return names
}
