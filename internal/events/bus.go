// Package events provides a lightweight in-process bus that fans decoded
// bulb notifications out to whoever is waiting on them.
package events

import (
	"sync"
	"time"
)

// EventType identifies the kind of event.
type EventType string

const (
	// Bulb report events, one per notification opcode
	ColorReported      EventType = "bulb.color_reported"
	BrightnessReported EventType = "bulb.brightness_reported"
	NameReported       EventType = "bulb.name_reported"
)

// Event is a single event emitted by a producer.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Address   string // Address of the bulb that sent the notification
	Data      any
}

// NewEvent creates an Event stamped with the current time.
func NewEvent(t EventType, address string, data any) Event {
	return Event{
		Type:      t,
		Timestamp: time.Now(),
		Address:   address,
		Data:      data,
	}
}

// SubscriberFunc is a callback invoked for each event.
// Implementations must not block; slow subscribers should buffer internally.
type SubscriberFunc func(Event)

// Bus is a simple synchronous fan-out event bus.
// Publishing blocks until all subscribers have been called, so subscribers
// should be fast (e.g., write to a buffered channel).
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]SubscriberFunc
	nextID      int
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[int]SubscriberFunc),
	}
}

// Subscribe registers a callback and returns an unsubscribe function.
func (b *Bus) Subscribe(fn SubscriberFunc) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

// Next returns a channel that receives the first event of type t published
// after the call, and a cancel function that must be called to release it.
func (b *Bus) Next(t EventType) (<-chan Event, func()) {
	ch := make(chan Event, 1)
	var once sync.Once
	unsub := b.Subscribe(func(e Event) {
		if e.Type != t {
			return
		}
		once.Do(func() { ch <- e })
	})
	return ch, unsub
}

// Publish sends an event to all current subscribers.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	// Snapshot subscriber list under read lock so we don't hold it during callbacks.
	subs := make([]SubscriberFunc, 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
