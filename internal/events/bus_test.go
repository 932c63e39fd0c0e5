package events

import (
	"testing"
	"time"
)

func recv(t *testing.T, sub Subscriber) Event {
	t.Helper()
	select {
	case ev := <-sub:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventDispatch, EventExpire)

	bus.Publish(EventDispatch, Payload{"event_id": "ev-1"})
	bus.Publish(EventTickerStarted, Payload{}) // not subscribed
	bus.Publish(EventExpire, Payload{"event_id": "ev-1"})

	first := recv(t, sub)
	if first.Type != EventDispatch {
		t.Errorf("first event type = %s, want %s", first.Type, EventDispatch)
	}
	if first.Payload["event_id"] != "ev-1" {
		t.Errorf("payload event_id = %v, want ev-1", first.Payload["event_id"])
	}

	second := recv(t, sub)
	if second.Type != EventExpire {
		t.Errorf("second event type = %s, want %s", second.Type, EventExpire)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(AllTypes()...)

	bus.Unsubscribe(sub)

	if _, open := <-sub; open {
		t.Error("channel should be closed after Unsubscribe")
	}

	// Must not panic or deliver to a removed subscriber.
	bus.Publish(EventDispatch, Payload{})
	bus.Unsubscribe(sub)
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventDispatch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(EventDispatch, Payload{"seq": i})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	if len(sub) != cap(sub) {
		t.Errorf("subscriber buffer = %d, want full buffer %d with overflow dropped", len(sub), cap(sub))
	}
}
