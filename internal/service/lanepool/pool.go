package lanepool

import (
	"time"

	"github.com/finchboard/tickerlane/internal/domain"
)

// Pool owns a fixed set of lanes. Each lane's rate is assigned once at
// construction (configured rates cycle across lanes), so the time until a
// lane can be reused depends only on the extent of the event it hosts.
//
// Pool is not safe for concurrent use; the dispatching scheduler is its
// single owner and serializes access.
type Pool struct {
	lanes  []domain.Lane
	picker Picker
}

func New(laneCount int, rates []float64, picker Picker) *Pool {
	lanes := make([]domain.Lane, 0, laneCount)
	for i := 0; i < laneCount; i++ {
		lanes = append(lanes, domain.NewLane(i, rates[i%len(rates)]))
	}
	return &Pool{
		lanes:  lanes,
		picker: picker,
	}
}

// PickAvailable selects a free lane via the configured picker strategy.
// The second return is false when every lane is busy (backpressure: the
// caller retries on its own cadence instead of spinning).
func (p *Pool) PickAvailable() (domain.Lane, bool) {
	free := make([]domain.Lane, 0, len(p.lanes))
	for _, lane := range p.lanes {
		if lane.IsFree() {
			free = append(free, lane)
		}
	}
	if len(free) == 0 {
		return domain.Lane{}, false
	}
	return free[p.picker.Pick(free)], true
}

// MarkBusy transitions a lane to busy and records when it becomes reusable.
// A lane that is already busy is never handed out twice; attempting to do so
// is a caller bug surfaced as ErrLaneBusy.
func (p *Pool) MarkBusy(laneID int, freeAt time.Time) error {
	lane, err := p.lane(laneID)
	if err != nil {
		return err
	}
	if lane.Busy {
		return domain.ErrLaneBusy
	}
	lane.Busy = true
	lane.FreeAt = freeAt
	return nil
}

// MarkFree transitions a lane back to free. Safe to call on an already free
// lane: destroy timers and reuse timers may both try to release a lane
// depending on which fires first.
func (p *Pool) MarkFree(laneID int) {
	lane, err := p.lane(laneID)
	if err != nil {
		return
	}
	lane.Busy = false
	lane.FreeAt = time.Now()
}

// Reset frees every lane, leaving the pool as freshly constructed.
func (p *Pool) Reset() {
	for i := range p.lanes {
		p.lanes[i].Busy = false
		p.lanes[i].FreeAt = time.Time{}
	}
}

// Snapshot returns a copy of the lane states.
func (p *Pool) Snapshot() []domain.Lane {
	return append([]domain.Lane(nil), p.lanes...)
}

// Len reports the number of lanes.
func (p *Pool) Len() int {
	return len(p.lanes)
}

// BusyCount reports how many lanes currently host an event.
func (p *Pool) BusyCount() int {
	count := 0
	for _, lane := range p.lanes {
		if lane.Busy {
			count++
		}
	}
	return count
}

func (p *Pool) lane(laneID int) (*domain.Lane, error) {
	if laneID < 0 || laneID >= len(p.lanes) {
		return nil, domain.ErrLaneNotFound
	}
	return &p.lanes[laneID], nil
}
