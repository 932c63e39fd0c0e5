package traversal

import (
	"math/rand"
	"time"
)

// Timing describes the lifecycle of one dispatched event.
//
// LaneReuse is deliberately shorter than Traversal: the lane is handed back
// as soon as the event has fully entered the field plus a small random gap,
// so a trailing event can start while the leading one is still visible but
// already past the entry zone. DestroyAfter adds a buffer on top of the full
// traversal to absorb timer drift before cleanup.
type Timing struct {
	TravelDistance float64
	Traversal      time.Duration
	LaneReuse      time.Duration
	DestroyAfter   time.Duration
}

// Calculator derives event timings from extent and lane rate. The gap added
// to the reuse delay is drawn uniformly from [reuseGapMin, reuseGapMax];
// both bounds and the clearance factor come from configuration because they
// are tuned for visual smoothness, not derived from a model.
type Calculator struct {
	fieldLength     float64
	clearanceFactor float64
	destroyBuffer   time.Duration
	reuseGapMin     time.Duration
	reuseGapMax     time.Duration
	rng             *rand.Rand
}

func NewCalculator(fieldLength, clearanceFactor float64, destroyBuffer, reuseGapMin, reuseGapMax time.Duration, rng *rand.Rand) *Calculator {
	return &Calculator{
		fieldLength:     fieldLength,
		clearanceFactor: clearanceFactor,
		destroyBuffer:   destroyBuffer,
		reuseGapMin:     reuseGapMin,
		reuseGapMax:     reuseGapMax,
		rng:             rng,
	}
}

// Compute returns the timing for an event of the given extent on a lane with
// the given rate (extent units per second).
//
// The travel distance covers the full field plus the event's own extent plus
// a clearance margin, so the event is completely off-field before cleanup.
// The lane reuse delay always stays strictly below the traversal duration;
// a configured gap large enough to cross it is clamped.
func (c *Calculator) Compute(extent, rate float64) Timing {
	travelDistance := c.fieldLength + extent + extent*c.clearanceFactor
	traversal := time.Duration(travelDistance / rate * float64(time.Second))

	entry := time.Duration(extent / rate * float64(time.Second))
	reuse := entry + c.gap()
	if reuse >= traversal {
		reuse = traversal - time.Millisecond
		if reuse < 0 {
			reuse = 0
		}
	}

	return Timing{
		TravelDistance: travelDistance,
		Traversal:      traversal,
		LaneReuse:      reuse,
		DestroyAfter:   traversal + c.destroyBuffer,
	}
}

func (c *Calculator) gap() time.Duration {
	if c.reuseGapMax <= c.reuseGapMin {
		return c.reuseGapMin
	}
	return c.reuseGapMin + time.Duration(c.rng.Int63n(int64(c.reuseGapMax-c.reuseGapMin)))
}
