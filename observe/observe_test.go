package observe

import (
	"context"
	"io"
	"os"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{ServiceName: "svc"}, false},
		{"none exporters", Config{ServiceName: "svc", TracingExporter: "none", MetricsExporter: "none"}, false},
		{"stdout exporters", Config{ServiceName: "svc", TracingExporter: "stdout", MetricsExporter: "stdout"}, false},
		{"missing service name", Config{}, true},
		{"unknown tracing exporter", Config{ServiceName: "svc", TracingExporter: "otlp"}, true},
		{"unknown metrics exporter", Config{ServiceName: "svc", MetricsExporter: "prometheus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_DisabledIsNoop(t *testing.T) {
	obs, err := New(Config{ServiceName: "svc", Version: "test", TracingExporter: "none", MetricsExporter: "none"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if obs.Tracer() == nil || obs.Meter() == nil || obs.Metrics() == nil {
		t.Fatal("telemetry primitives must be non-nil even when disabled")
	}

	// Noop instruments: recording must not panic and spans must be inert.
	ctx := context.Background()
	obs.Metrics().RecordRequest(ctx, "GET", "success", "", 12*time.Millisecond)
	obs.Metrics().RecordRetry(ctx, "server")
	obs.Metrics().SetCircuitState(1)

	_, span := obs.Tracer().Start(ctx, "test")
	if span.SpanContext().IsValid() {
		t.Error("noop tracer produced a recording span")
	}
	span.End()

	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() with no providers = %v", err)
	}
}

func TestNew_DefaultConfigBoots(t *testing.T) {
	// Resource construction must not fail on schema mismatches between the
	// SDK default resource and our semconv attributes; a failure here means
	// the server can never start.
	obs, err := New(Config{ServiceName: "websets-mcp"})
	if err != nil {
		t.Fatalf("New() with defaults = %v", err)
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
}

func TestNew_StdoutExportersKeepStdoutClean(t *testing.T) {
	// Stdout carries the MCP transport; telemetry must land on stderr.
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	obs, err := New(Config{
		ServiceName:     "svc",
		TracingExporter: "stdout",
		MetricsExporter: "stdout",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	_, span := obs.Tracer().Start(ctx, "boot")
	span.End()
	obs.Metrics().RecordRequest(ctx, "GET", "success", "", time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}

	os.Stdout = orig
	w.Close()
	leaked, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read pipe: %v", err)
	}
	if len(leaked) != 0 {
		t.Errorf("telemetry leaked onto stdout: %s", leaked)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{ServiceName: "svc", TracingExporter: "jaeger"}); err == nil {
		t.Error("New() with unknown exporter = nil error")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	obs, err := New(Config{ServiceName: "svc", TracingExporter: "none", MetricsExporter: "none"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err := obs.Shutdown(ctx); err != nil {
		t.Fatalf("first Shutdown() = %v", err)
	}
	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("second Shutdown() = %v", err)
	}
}
