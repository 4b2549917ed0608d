package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "manuald"

// StartImportSpan starts a span for a JSON import attempt.
func StartImportSpan(ctx context.Context, filename string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "import",
		trace.WithAttributes(
			attribute.String("import.filename", filename),
		),
	)
}

// StartReorderSpan starts a span for a reorder submission.
func StartReorderSpan(ctx context.Context, count int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "reorder",
		trace.WithAttributes(
			attribute.Int("reorder.sections", count),
		),
	)
}
