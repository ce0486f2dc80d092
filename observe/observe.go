package observe

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Config holds telemetry configuration.
type Config struct {
	ServiceName string
	Version     string

	// TracingExporter selects the span exporter: stdout|none.
	TracingExporter string

	// MetricsExporter selects the metric exporter: stdout|none.
	MetricsExporter string
}

// Valid exporters for a stdio server.
var validExporters = map[string]bool{
	"stdout": true,
	"none":   true,
	"":       true, // Empty is valid (disabled)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return errors.New("service name is required")
	}
	if !validExporters[c.TracingExporter] {
		return fmt.Errorf("unknown tracing exporter: %q", c.TracingExporter)
	}
	if !validExporters[c.MetricsExporter] {
		return fmt.Errorf("unknown metrics exporter: %q", c.MetricsExporter)
	}
	return nil
}

// Observer provides access to telemetry primitives for the request pipeline.
type Observer struct {
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *RequestMetrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// New creates an Observer from config. Disabled subsystems get noop
// providers.
func New(cfg Config) (*Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("observe: build resource: %w", err)
	}

	obs := &Observer{
		tracer: tracenoop.NewTracerProvider().Tracer(cfg.ServiceName),
		meter:  metricnoop.NewMeterProvider().Meter(cfg.ServiceName),
	}

	// The "stdout" exporters write to stderr: process stdout carries the
	// MCP transport and must stay pure JSON-RPC.
	if cfg.TracingExporter == "stdout" {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("observe: create trace exporter: %w", err)
		}
		obs.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
		obs.tracer = obs.tracerProvider.Tracer(cfg.ServiceName)
	}

	if cfg.MetricsExporter == "stdout" {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("observe: create metric exporter: %w", err)
		}
		obs.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
			sdkmetric.WithResource(res),
		)
		obs.meter = obs.meterProvider.Meter(cfg.ServiceName)
	}

	obs.metrics, err = newRequestMetrics(obs.meter)
	if err != nil {
		return nil, err
	}
	return obs, nil
}

// Tracer returns the configured tracer.
func (o *Observer) Tracer() trace.Tracer {
	return o.tracer
}

// Meter returns the configured meter.
func (o *Observer) Meter() metric.Meter {
	return o.meter
}

// Metrics returns the request pipeline instruments.
func (o *Observer) Metrics() *RequestMetrics {
	return o.metrics
}

// Shutdown flushes and stops the configured providers. Idempotent; returns
// the first error encountered.
func (o *Observer) Shutdown(ctx context.Context) error {
	var first error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
		o.tracerProvider = nil
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
		o.meterProvider = nil
	}
	return first
}
