package domain

import (
	"context"
	"time"
)

// DispatchRecord captures one dispatch outcome for aggregate telemetry.
type DispatchRecord struct {
	EventID      string
	HeadlineID   string
	LaneID       int
	Rate         float64
	Extent       float64
	TraversalMS  int64
	LaneReuseMS  int64
	DispatchedAt time.Time
}

// FeedRecorder writes dispatch telemetry to an external sink.
type FeedRecorder interface {
	RecordDispatches(ctx context.Context, records []DispatchRecord) error
	Flush(ctx context.Context) error
	Close() error
}
