package domain

import "time"

// Lane is one of a fixed set of parallel display channels. A lane hosts at
// most one live event at a time; only its Busy/FreeAt fields change over the
// scheduler's lifetime. Rate is fixed at construction so reuse timing depends
// only on event extent, never on a freshly rolled speed.
type Lane struct {
	ID     int       `json:"id"`
	Rate   float64   `json:"rate"` // extent units per second
	Busy   bool      `json:"busy"`
	FreeAt time.Time `json:"free_at"`
}

func NewLane(id int, rate float64) Lane {
	return Lane{
		ID:   id,
		Rate: rate,
	}
}

func (l Lane) IsFree() bool {
	return !l.Busy
}
