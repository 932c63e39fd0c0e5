package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tickerTracerName = "github.com/finchboard/tickerlane/internal/service/ticker"

func TickerTracer() trace.Tracer {
	return otel.Tracer(tickerTracerName)
}

func StartTickerStartSpan(ctx context.Context, sourceSize int) (context.Context, trace.Span) {
	return TickerTracer().Start(ctx, "ticker.start",
		trace.WithAttributes(
			attribute.Int("ticker.source_size", sourceSize),
		),
	)
}

func StartTickerStopSpan(ctx context.Context) (context.Context, trace.Span) {
	return TickerTracer().Start(ctx, "ticker.stop")
}

func StartActivateSpan(ctx context.Context, eventID string) (context.Context, trace.Span) {
	return TickerTracer().Start(ctx, "ticker.activate",
		trace.WithAttributes(
			attribute.String("event_id", eventID),
		),
	)
}

func StartHeadlineSyncSpan(ctx context.Context, count int) (context.Context, trace.Span) {
	return TickerTracer().Start(ctx, "ticker.headline_sync",
		trace.WithAttributes(
			attribute.Int("headline.count", count),
		),
	)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
