package observe

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RequestMetrics records metrics for the resilient request pipeline.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording is best-effort and must not panic.
type RequestMetrics struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	retryCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	circuitState atomic.Int64
}

func newRequestMetrics(meter metric.Meter) (*RequestMetrics, error) {
	m := &RequestMetrics{meter: meter}

	var err error
	m.totalCount, err = meter.Int64Counter(
		"websets.request.total",
		metric.WithDescription("Total number of API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.retryCount, err = meter.Int64Counter(
		"websets.request.retries",
		metric.WithDescription("Total number of request retries"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	m.durationHist, err = meter.Float64Histogram(
		"websets.request.duration_ms",
		metric.WithDescription("API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	_, err = meter.Int64ObservableGauge(
		"websets.circuit.state",
		metric.WithDescription("Circuit breaker state (0=closed, 1=open, 2=half-open)"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(m.circuitState.Load())
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRequest records one completed logical request.
func (m *RequestMetrics) RecordRequest(ctx context.Context, method, outcome, kind string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("outcome", outcome),
	}
	if kind != "" {
		attrs = append(attrs, attribute.String("error.kind", kind))
	}
	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordRetry records one retry attempt.
func (m *RequestMetrics) RecordRetry(ctx context.Context, kind string) {
	m.retryCount.Add(ctx, 1, metric.WithAttributes(attribute.String("error.kind", kind)))
}

// SetCircuitState updates the circuit state gauge.
func (m *RequestMetrics) SetCircuitState(state int64) {
	m.circuitState.Store(state)
}
