package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of service spans
const TracerName = "shipstation-bridge"

// Span attribute keys
const (
	AttrAction      = attribute.Key("shipstation.action")
	AttrOrderNumber = attribute.Key("shipstation.order_number")
	AttrCarrier     = attribute.Key("shipstation.carrier")
	AttrPage        = attribute.Key("shipstation.page")
	AttrPageSize    = attribute.Key("shipstation.page_size")
	AttrTotal       = attribute.Key("shipstation.total")
	AttrExported    = attribute.Key("shipstation.exported")
)

// StartServiceSpan starts an internal span named {service}.{method}.
// The caller ends it.
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError records err on the span and marks it failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the trace id of the span in ctx, or "".
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
