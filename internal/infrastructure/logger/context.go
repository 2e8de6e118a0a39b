package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	requestIDKey
)

// Scope derives a request logger from base, tagged with the request ID and
// the active trace, and stores both on the returned context.
func Scope(ctx context.Context, base *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	scoped := WithTraceContext(ctx, base)
	if requestID != "" {
		scoped = scoped.With(zap.String("request_id", requestID))
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	return context.WithValue(ctx, loggerKey, scoped), scoped
}

// FromContext returns the logger stored by Scope, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// RequestIDFromContext returns the request ID stored by Scope
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithTraceContext adds trace_id and span_id from the active span.
// The logger is returned unchanged when there is no valid span.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		zap.Stringer("trace_id", sc.TraceID()),
		zap.Stringer("span_id", sc.SpanID()),
	)
}
