package pacing

import (
	"math/rand"
	"time"
)

var _ Strategy = (*TriangularStrategy)(nil)

// TriangularStrategy draws intervals as the mean of two uniform draws over
// [min, max], which concentrates mass around the midpoint. The steadier
// rhythm reads calmer on screen than fully uniform jitter while keeping the
// same bounds.
type TriangularStrategy struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

func NewTriangularStrategy(min, max time.Duration, rng *rand.Rand) *TriangularStrategy {
	return &TriangularStrategy{
		min: min,
		max: max,
		rng: rng,
	}
}

func (s *TriangularStrategy) NextInterval() time.Duration {
	if s.max <= s.min {
		return s.min
	}
	span := int64(s.max - s.min)
	a := s.rng.Int63n(span + 1)
	b := s.rng.Int63n(span + 1)
	return s.min + time.Duration((a+b)/2)
}
