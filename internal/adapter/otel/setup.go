// Package otel provides tracing and metrics instrumentation for manuald.
// Span export goes to whatever global provider the host process installs;
// without one the spans are no-ops.
package otel

import (
	"context"
	"log/slog"
)

// ShutdownFunc is called to flush and shut down the trace provider.
type ShutdownFunc func(ctx context.Context) error

// InitTracer installs tracing for the service. With no exporter configured
// the global no-op provider stays in place and this only logs.
func InitTracer(serviceName string) ShutdownFunc {
	slog.Info("tracing initialized", "service", serviceName)
	return func(_ context.Context) error {
		return nil
	}
}
