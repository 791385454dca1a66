package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/donaldgifford/part-price-tracker"

// Span is the subset of a tracing span the pipeline uses.
type Span interface {
	End()
	RecordError(error)
	SetAttributes(...attribute.KeyValue)
}

type otelSpan struct {
	inner trace.Span
}

// StartCycleSpan starts the root span of a refresh cycle.
func StartCycleSpan(ctx context.Context, cycleID, trigger string) (context.Context, Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "refresh.cycle",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("ppt.cycle_id", cycleID),
			attribute.String("ppt.trigger", trigger),
		),
	)
	return ctx, otelSpan{inner: span}
}

// StartFetchSpan starts a span around one product URL fetch.
func StartFetchSpan(ctx context.Context, retailer string, productURLID int64) (context.Context, Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "retailer.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ppt.retailer", retailer),
			attribute.Int64("ppt.product_url_id", productURLID),
		),
	)
	return ctx, otelSpan{inner: span}
}

// StartNotifySpan starts a span around a transport hand-off.
func StartNotifySpan(ctx context.Context, transport, classification string) (context.Context, Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "notify.send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ppt.transport", transport),
			attribute.String("ppt.classification", classification),
		),
	)
	return ctx, otelSpan{inner: span}
}

// StartHTTPSpan starts a server span for an inbound request. The route is
// the matched path template, not the raw URL.
func StartHTTPSpan(ctx context.Context, method, route string) (context.Context, Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
		),
	)
	return ctx, otelSpan{inner: span}
}

func (s otelSpan) End() {
	if s.inner == nil {
		return
	}
	s.inner.End()
}

func (s otelSpan) RecordError(err error) {
	if s.inner == nil || err == nil {
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}

func (s otelSpan) SetAttributes(kv ...attribute.KeyValue) {
	if s.inner == nil {
		return
	}
	s.inner.SetAttributes(kv...)
}
