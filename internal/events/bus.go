package events

import "sync"

// EventType enumerates ticker lifecycle event categories.
type EventType string

const (
	EventTickerStarted EventType = "ticker.started"
	EventTickerStopped EventType = "ticker.stopped"
	EventDispatch      EventType = "ticker.dispatch"
	EventLaneFree      EventType = "ticker.lane_free"
	EventExpire        EventType = "ticker.expire"
	EventActivate      EventType = "ticker.activate"
)

// AllTypes lists every lifecycle event type, in rough lifecycle order.
func AllTypes() []EventType {
	return []EventType{
		EventTickerStarted,
		EventTickerStopped,
		EventDispatch,
		EventLaneFree,
		EventExpire,
		EventActivate,
	}
}

// Payload carries event attributes.
type Payload map[string]any

// Event pairs a type with its payload so one subscriber channel can carry
// several event types.
type Event struct {
	Type    EventType
	Payload Payload
}

// Subscriber receives events.
type Subscriber chan Event

// Bus implements a simple in-process pubsub. Publishing never blocks; a
// subscriber that falls behind loses events rather than stalling the
// scheduler's timer callbacks.
type Bus struct {
	mu   sync.RWMutex
	subs map[EventType][]Subscriber
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]Subscriber)}
}

// Subscribe registers one channel for all given event types.
func (b *Bus) Subscribe(types ...EventType) Subscriber {
	ch := make(Subscriber, 32)
	b.mu.Lock()
	for _, t := range types {
		b.subs[t] = append(b.subs[t], ch)
	}
	b.mu.Unlock()
	return ch
}

// Publish sends the payload to every subscriber of the event type.
func (b *Bus) Publish(eventType EventType, payload Payload) {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subs[eventType]...)
	b.mu.RUnlock()

	ev := Event{Type: eventType, Payload: payload}
	for _, sub := range subs {
		select {
		case sub <- ev:
		default:
		}
	}
}

// Unsubscribe removes the subscriber from every type it was registered for
// and closes its channel.
func (b *Bus) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	for eventType, subs := range b.subs {
		for i, candidate := range subs {
			if candidate == sub {
				b.subs[eventType] = append(subs[:i], subs[i+1:]...)
				found = true
				break
			}
		}
	}
	if found {
		close(sub)
	}
}
