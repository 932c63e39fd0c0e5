package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	tickerMeterName = "ticker.scheduler"
)

type TickerMetrics struct {
	dispatches        metric.Int64Counter
	retries           metric.Int64Counter
	backlogRefills    metric.Int64Counter
	liveEvents        metric.Int64UpDownCounter
	traversalDuration metric.Float64Histogram
}

func NewTickerMetrics() (*TickerMetrics, error) {
	meter := otel.Meter(tickerMeterName)

	dispatches, err := meter.Int64Counter(
		"ticker_dispatches_total",
		metric.WithDescription("Total number of events dispatched onto lanes"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"ticker_tick_retries_total",
		metric.WithDescription("Ticks that retried instead of dispatching"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	backlogRefills, err := meter.Int64Counter(
		"ticker_backlog_refills_total",
		metric.WithDescription("Shuffle-refill cycles of the backlog"),
		metric.WithUnit("{refill}"),
	)
	if err != nil {
		return nil, err
	}

	liveEvents, err := meter.Int64UpDownCounter(
		"ticker_live_events",
		metric.WithDescription("Events currently traversing the field"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	traversalDuration, err := meter.Float64Histogram(
		"ticker_traversal_duration_seconds",
		metric.WithDescription("Computed traversal duration per dispatched event"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90,
		),
	)
	if err != nil {
		return nil, err
	}

	return &TickerMetrics{
		dispatches:        dispatches,
		retries:           retries,
		backlogRefills:    backlogRefills,
		liveEvents:        liveEvents,
		traversalDuration: traversalDuration,
	}, nil
}

func (m *TickerMetrics) RecordDispatch(ctx context.Context, laneID int) {
	m.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("lane", strconv.Itoa(laneID)),
	))
}

func (m *TickerMetrics) RecordRetry(ctx context.Context, reason string) {
	m.retries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *TickerMetrics) RecordBacklogRefill(ctx context.Context) {
	m.backlogRefills.Add(ctx, 1)
}

func (m *TickerMetrics) RecordEventStarted(ctx context.Context) {
	m.liveEvents.Add(ctx, 1)
}

func (m *TickerMetrics) RecordEventFinished(ctx context.Context) {
	m.liveEvents.Add(ctx, -1)
}

func (m *TickerMetrics) RecordTraversalDuration(ctx context.Context, laneID int, duration time.Duration) {
	m.traversalDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("lane", strconv.Itoa(laneID)),
	))
}
