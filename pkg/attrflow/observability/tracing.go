package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("attrflow")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartActionSpan starts a span for a MayExecute or Execute call.
	StartActionSpan(ctx context.Context, operation, runID, objectID string) (context.Context, trace.Span)

	// StartLanguageSpan starts a span for the writes of one language.
	// It should be a child of the action span.
	StartLanguageSpan(ctx context.Context, language int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// Configure the global tracer provider before calling this function:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartActionSpan starts a span for an action call.
func (m *otelSpanManager) StartActionSpan(ctx context.Context, operation, runID, objectID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "attrflow."+operation,
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("object.id", objectID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLanguageSpan starts a span for one language.
func (m *otelSpanManager) StartLanguageSpan(ctx context.Context, language int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "attrflow.language",
		trace.WithAttributes(
			attribute.Int("language.id", language),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
