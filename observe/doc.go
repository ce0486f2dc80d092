// Package observe wires OpenTelemetry metrics and tracing for the request
// pipeline.
//
// The server is a stdio process with no scrape endpoint, so exporters are
// limited to stdout (for local inspection) and none. Exporter output goes
// to stderr, since process stdout carries the MCP wire. When telemetry is
// disabled the Observer hands out noop providers, so instrumented code
// never branches on whether telemetry is on.
package observe
