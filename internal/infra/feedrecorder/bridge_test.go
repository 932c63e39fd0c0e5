package feedrecorder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/finchboard/tickerlane/internal/domain"
	"github.com/finchboard/tickerlane/internal/events"
)

type captureRecorder struct {
	mu      sync.Mutex
	records []domain.DispatchRecord
}

func (c *captureRecorder) RecordDispatches(_ context.Context, records []domain.DispatchRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, records...)
	return nil
}

func (c *captureRecorder) Flush(_ context.Context) error { return nil }
func (c *captureRecorder) Close() error                  { return nil }

func (c *captureRecorder) snapshot() []domain.DispatchRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.DispatchRecord(nil), c.records...)
}

func TestBridge_ForwardsDispatchEvents(t *testing.T) {
	bus := events.NewBus()
	recorder := &captureRecorder{}

	bridge := NewBridge(bus, recorder)
	bridge.Start(context.Background())
	defer bridge.Stop()

	bus.Publish(events.EventDispatch, events.Payload{
		"event_id":     "ev-1",
		"headline_id":  "h-1",
		"lane_id":      2,
		"rate":         40.0,
		"extent":       160.0,
		"traversal_ms": int64(23750),
		"reuse_ms":     int64(5200),
	})

	deadline := time.After(2 * time.Second)
	for {
		records := recorder.snapshot()
		if len(records) == 1 {
			r := records[0]
			if r.EventID != "ev-1" {
				t.Errorf("EventID = %s, want ev-1", r.EventID)
			}
			if r.LaneID != 2 {
				t.Errorf("LaneID = %d, want 2", r.LaneID)
			}
			if r.TraversalMS != 23750 {
				t.Errorf("TraversalMS = %d, want 23750", r.TraversalMS)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("bridge recorded %d dispatches, want 1", len(records))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestBridge_IgnoresNonDispatchEvents(t *testing.T) {
	bus := events.NewBus()
	recorder := &captureRecorder{}

	bridge := NewBridge(bus, recorder)
	bridge.Start(context.Background())

	bus.Publish(events.EventTickerStarted, events.Payload{"lane_count": 3})
	bus.Publish(events.EventLaneFree, events.Payload{"lane_id": 1})

	time.Sleep(50 * time.Millisecond)
	bridge.Stop()

	if got := len(recorder.snapshot()); got != 0 {
		t.Errorf("recorded %d dispatches, want 0", got)
	}
}
