package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records attrflow metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one precondition evaluation.
	RecordEvaluation(ctx context.Context, attributeID string, result bool, err error)

	// RecordResolution records one template resolution.
	RecordResolution(ctx context.Context, err error)

	// RecordWrite records one attribute write.
	RecordWrite(ctx context.Context, attributeID string, err error)

	// RecordActionRun records a MayExecute or Execute call.
	RecordActionRun(ctx context.Context, operation string, success bool, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations   metric.Int64Counter
	resolutions   metric.Int64Counter
	writes        metric.Int64Counter
	actionRuns    metric.Int64Counter
	actionLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("attrflow")

	evaluations, err := meter.Int64Counter("attrflow.evaluations",
		metric.WithDescription("Number of precondition evaluations"),
	)
	if err != nil {
		return nil, err
	}

	resolutions, err := meter.Int64Counter("attrflow.resolutions",
		metric.WithDescription("Number of template resolutions"),
	)
	if err != nil {
		return nil, err
	}

	writes, err := meter.Int64Counter("attrflow.writes",
		metric.WithDescription("Number of attribute writes"),
	)
	if err != nil {
		return nil, err
	}

	actionRuns, err := meter.Int64Counter("attrflow.action.runs",
		metric.WithDescription("Number of action gate checks and executions"),
	)
	if err != nil {
		return nil, err
	}

	actionLatency, err := meter.Float64Histogram("attrflow.action.latency_ms",
		metric.WithDescription("Action latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations:   evaluations,
		resolutions:   resolutions,
		writes:        writes,
		actionRuns:    actionRuns,
		actionLatency: actionLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records a precondition evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, attributeID string, result bool, err error) {
	m.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("attribute_id", attributeID),
		attribute.String("outcome", outcome(result, err)),
	))
}

// RecordResolution records a template resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, err error) {
	m.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", err == nil),
	))
}

// RecordWrite records an attribute write.
func (m *otelMetrics) RecordWrite(ctx context.Context, attributeID string, err error) {
	m.writes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("attribute_id", attributeID),
		attribute.Bool("success", err == nil),
	))
}

// RecordActionRun records an action call.
func (m *otelMetrics) RecordActionRun(ctx context.Context, operation string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	}
	m.actionRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.actionLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
}

func outcome(result bool, err error) string {
	switch {
	case err != nil:
		return "error"
	case result:
		return "true"
	}
	return "false"
}
