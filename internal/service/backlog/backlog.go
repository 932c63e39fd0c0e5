package backlog

import (
	"math/rand"

	"github.com/finchboard/tickerlane/internal/domain"
)

// Backlog holds the pool of pending headlines and hands them out FIFO.
// When the queue drains it refills itself with a freshly shuffled copy of
// the source set, so every headline appears once per cycle before any
// repeats. The zero ordering guarantee across cycles bounds starvation of
// rarely seen content without maintaining any priority structure.
//
// Backlog is not safe for concurrent use; the dispatching scheduler is its
// single owner and serializes access.
type Backlog struct {
	source  []domain.Headline
	queue   []domain.Headline
	rng     *rand.Rand
	refills uint64
}

func New(rng *rand.Rand) *Backlog {
	return &Backlog{rng: rng}
}

// SetSource replaces the source set. The current queue keeps draining first
// so no headline repeats within the cycle already underway; the new set
// takes effect on the next refill.
func (b *Backlog) SetSource(items []domain.Headline) {
	b.source = append([]domain.Headline(nil), items...)
}

// Dequeue returns the next headline, refilling from a shuffled copy of the
// source set when the queue is empty. An empty source set yields
// domain.ErrEmptyBacklog, which callers treat as "idle and retry later"
// rather than a failure.
func (b *Backlog) Dequeue() (domain.Headline, error) {
	if len(b.queue) == 0 {
		if len(b.source) == 0 {
			return domain.Headline{}, domain.ErrEmptyBacklog
		}
		b.refill()
	}

	next := b.queue[0]
	b.queue = b.queue[1:]
	return next, nil
}

func (b *Backlog) refill() {
	b.queue = append([]domain.Headline(nil), b.source...)
	// Fisher-Yates over the fresh copy.
	for i := len(b.queue) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
	}
	b.refills++
}

// ResetQueue drops the pending queue so the next Dequeue starts a fresh
// shuffled cycle. The source set is kept.
func (b *Backlog) ResetQueue() {
	b.queue = nil
}

// Len reports the number of headlines left in the current cycle.
func (b *Backlog) Len() int {
	return len(b.queue)
}

// SourceLen reports the size of the source set.
func (b *Backlog) SourceLen() int {
	return len(b.source)
}

// Refills reports how many shuffle-refill cycles have run.
func (b *Backlog) Refills() uint64 {
	return b.refills
}
