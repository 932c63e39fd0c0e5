package lanepool

import (
	"log/slog"
	"math/rand"

	"github.com/finchboard/tickerlane/internal/config"
	"github.com/finchboard/tickerlane/internal/domain"
)

// Picker chooses one lane out of the free set. Pick receives a non-empty
// slice and returns an index into it.
type Picker interface {
	Pick(free []domain.Lane) int
}

// NewPicker builds the picker strategy selected by configuration, falling
// back to uniform random selection.
func NewPicker(kind config.LanePicker, rng *rand.Rand) Picker {
	switch kind {
	case config.LanePickerRoundRobin:
		slog.Info("using round-robin lane picker")
		return &roundRobinPicker{last: -1}

	case config.LanePickerLeastRecent:
		slog.Info("using least-recent lane picker")
		return &leastRecentPicker{}

	case config.LanePickerRandom:
		fallthrough
	default:
		slog.Info("using random lane picker")
		return &randomPicker{rng: rng}
	}
}

var _ Picker = (*randomPicker)(nil)

// randomPicker selects uniformly among free lanes, which spreads content
// across the field without any per-lane bookkeeping.
type randomPicker struct {
	rng *rand.Rand
}

func (p *randomPicker) Pick(free []domain.Lane) int {
	return p.rng.Intn(len(free))
}

var _ Picker = (*roundRobinPicker)(nil)

// roundRobinPicker cycles lane IDs, choosing the first free lane strictly
// after the previously used one (wrapping around).
type roundRobinPicker struct {
	last int
}

func (p *roundRobinPicker) Pick(free []domain.Lane) int {
	best := 0
	found := false
	for i, lane := range free {
		if lane.ID > p.last {
			best = i
			found = true
			break
		}
	}
	if !found {
		// All free lanes have IDs at or before the last pick: wrap.
		best = 0
	}
	p.last = free[best].ID
	return best
}

var _ Picker = (*leastRecentPicker)(nil)

// leastRecentPicker selects the free lane that has been idle the longest,
// which evens out wear when lane rates differ noticeably.
type leastRecentPicker struct{}

func (p *leastRecentPicker) Pick(free []domain.Lane) int {
	best := 0
	for i := 1; i < len(free); i++ {
		if free[i].FreeAt.Before(free[best].FreeAt) {
			best = i
		}
	}
	return best
}
