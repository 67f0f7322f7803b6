package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceFromContext — trace_id и span_id активного спана; ok=false, если спана нет
// (в том числе при выключенной трассировке: noop-спаны невалидны).
func TraceFromContext(ctx context.Context) (traceID, spanID string, ok bool) {
	if ctx == nil {
		return "", "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
