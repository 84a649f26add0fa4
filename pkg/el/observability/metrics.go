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

// MetricsRecorder records expression-language metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCompile records a template compilation with its duration and error status.
	RecordCompile(ctx context.Context, duration time.Duration, err error)

	// RecordEvaluate records an expression evaluation.
	RecordEvaluate(ctx context.Context, duration time.Duration, err error)

	// RecordFunctionCall records a single built-in function invocation.
	RecordFunctionCall(ctx context.Context, name string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	compiles       metric.Int64Counter
	compileLatency metric.Float64Histogram
	compileErrors  metric.Int64Counter
	evaluations    metric.Int64Counter
	evalLatency    metric.Float64Histogram
	evalErrors     metric.Int64Counter
	functionCalls  metric.Int64Counter
	functionErrors metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("el")

	compiles, err := meter.Int64Counter("el.compile.count",
		metric.WithDescription("Number of template compilations"),
	)
	if err != nil {
		return nil, err
	}

	compileLatency, err := meter.Float64Histogram("el.compile.latency_ms",
		metric.WithDescription("Compilation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	compileErrors, err := meter.Int64Counter("el.compile.errors",
		metric.WithDescription("Number of compilation errors"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("el.evaluate.count",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("el.evaluate.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("el.evaluate.errors",
		metric.WithDescription("Number of evaluation errors"),
	)
	if err != nil {
		return nil, err
	}

	functionCalls, err := meter.Int64Counter("el.function.calls",
		metric.WithDescription("Number of built-in function invocations"),
	)
	if err != nil {
		return nil, err
	}

	functionErrors, err := meter.Int64Counter("el.function.errors",
		metric.WithDescription("Number of built-in function errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		compiles:       compiles,
		compileLatency: compileLatency,
		compileErrors:  compileErrors,
		evaluations:    evaluations,
		evalLatency:    evalLatency,
		evalErrors:     evalErrors,
		functionCalls:  functionCalls,
		functionErrors: functionErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
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

// RecordCompile records a template compilation.
func (m *otelMetrics) RecordCompile(ctx context.Context, duration time.Duration, err error) {
	m.compiles.Add(ctx, 1)
	m.compileLatency.Record(ctx, float64(duration.Microseconds())/1000)
	if err != nil {
		m.compileErrors.Add(ctx, 1)
	}
}

// RecordEvaluate records an expression evaluation.
func (m *otelMetrics) RecordEvaluate(ctx context.Context, duration time.Duration, err error) {
	m.evaluations.Add(ctx, 1)
	m.evalLatency.Record(ctx, float64(duration.Microseconds())/1000)
	if err != nil {
		m.evalErrors.Add(ctx, 1)
	}
}

// RecordFunctionCall records a single function invocation.
func (m *otelMetrics) RecordFunctionCall(ctx context.Context, name string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{attribute.String("function", name)}
	m.functionCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.functionErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
