package domain

import (
	"time"
)

// EventState tracks an event's lifecycle from dispatch to destruction.
type EventState string

const (
	EventStateDispatched EventState = "dispatched"
	EventStateTraversing EventState = "traversing"
	EventStateExpired    EventState = "expired"
	EventStateDestroyed  EventState = "destroyed"
)

func (s EventState) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s EventState) IsTerminal() bool {
	return s == EventStateDestroyed
}

// CanTransitionTo validates the lifecycle ordering
// dispatched -> traversing -> expired -> destroyed. The lane becoming
// reusable is a lane-level milestone and does not appear here.
func (s EventState) CanTransitionTo(next EventState) bool {
	switch s {
	case EventStateDispatched:
		return next == EventStateTraversing || next == EventStateExpired
	case EventStateTraversing:
		return next == EventStateExpired
	case EventStateExpired:
		return next == EventStateDestroyed
	default:
		return false
	}
}

// Event is a dispatched unit of ticker content with a measurable extent and
// a finite lifetime. It is created when a headline leaves the backlog and
// destroyed once its traversal (plus safety buffer) has elapsed.
type Event struct {
	ID           string
	Headline     Headline
	Extent       float64 // size along the travel axis, extent units
	LaneID       int
	DispatchedAt time.Time
	State        EventState
}

func NewEvent(id string, headline Headline, extent float64, laneID int) *Event {
	return &Event{
		ID:           id,
		Headline:     headline,
		Extent:       extent,
		LaneID:       laneID,
		DispatchedAt: time.Now().UTC(),
		State:        EventStateDispatched,
	}
}

// TransitionTo applies a validated state change.
func (e *Event) TransitionTo(next EventState) error {
	if !e.State.CanTransitionTo(next) {
		return ErrInvalidEventState
	}
	e.State = next
	return nil
}
