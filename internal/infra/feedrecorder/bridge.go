package feedrecorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/finchboard/tickerlane/internal/domain"
	"github.com/finchboard/tickerlane/internal/events"
)

// Bridge subscribes to dispatch events and forwards them to a FeedRecorder.
// It decouples the scheduler's timer callbacks from sink latency: the
// scheduler publishes without blocking, and the bridge absorbs the write
// cost on its own goroutine.
type Bridge struct {
	bus      *events.Bus
	recorder domain.FeedRecorder

	sub  events.Subscriber
	done chan struct{}
}

func NewBridge(bus *events.Bus, recorder domain.FeedRecorder) *Bridge {
	return &Bridge{
		bus:      bus,
		recorder: recorder,
		done:     make(chan struct{}),
	}
}

// Start begins consuming dispatch events until ctx is cancelled or Stop is
// called.
func (b *Bridge) Start(ctx context.Context) {
	b.sub = b.bus.Subscribe(events.EventDispatch)

	go func() {
		defer close(b.done)
		for {
			select {
			case ev, ok := <-b.sub:
				if !ok {
					return
				}
				b.record(ctx, ev)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop unsubscribes from the bus and waits for the consumer goroutine to
// drain.
func (b *Bridge) Stop() {
	if b.sub != nil {
		b.bus.Unsubscribe(b.sub)
	}
	<-b.done
}

func (b *Bridge) record(ctx context.Context, ev events.Event) {
	record := domain.DispatchRecord{
		DispatchedAt: time.Now(),
	}
	if v, ok := ev.Payload["event_id"].(string); ok {
		record.EventID = v
	}
	if v, ok := ev.Payload["headline_id"].(string); ok {
		record.HeadlineID = v
	}
	if v, ok := ev.Payload["lane_id"].(int); ok {
		record.LaneID = v
	}
	if v, ok := ev.Payload["rate"].(float64); ok {
		record.Rate = v
	}
	if v, ok := ev.Payload["extent"].(float64); ok {
		record.Extent = v
	}
	if v, ok := ev.Payload["traversal_ms"].(int64); ok {
		record.TraversalMS = v
	}
	if v, ok := ev.Payload["reuse_ms"].(int64); ok {
		record.LaneReuseMS = v
	}

	if err := b.recorder.RecordDispatches(ctx, []domain.DispatchRecord{record}); err != nil {
		slog.WarnContext(ctx, "failed to record dispatch",
			slog.String("event_id", record.EventID),
			slog.String("error", err.Error()),
		)
	}
}
