package pacing

import (
	"math/rand"
	"time"
)

var _ Strategy = (*UniformStrategy)(nil)

// UniformStrategy draws intervals uniformly from [min, max].
type UniformStrategy struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

func NewUniformStrategy(min, max time.Duration, rng *rand.Rand) *UniformStrategy {
	return &UniformStrategy{
		min: min,
		max: max,
		rng: rng,
	}
}

func (s *UniformStrategy) NextInterval() time.Duration {
	if s.max <= s.min {
		return s.min
	}
	return s.min + time.Duration(s.rng.Int63n(int64(s.max-s.min)+1))
}
