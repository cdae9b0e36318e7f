package utilities

import "sync"

type EventHandler func(data interface{})

type subscription struct {
	id      uint64
	handler EventHandler
}

// EventBus is an in-process publish/subscribe hub. Handlers run on their own
// goroutine, so publishers never block on slow subscribers.
type EventBus struct {
	handlers map[string][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]subscription),
	}
}

// Subscribe registers handler for event and returns a func that removes it.
func (eb *EventBus) Subscribe(event string, handler EventHandler) (unsubscribe func()) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.nextID++
	id := eb.nextID
	eb.handlers[event] = append(eb.handlers[event], subscription{id: id, handler: handler})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		subs := eb.handlers[event]
		for i, s := range subs {
			if s.id == id {
				eb.handlers[event] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(eb.handlers[event]) == 0 {
			delete(eb.handlers, event)
		}
	}
}

func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, s := range eb.handlers[event] {
		go s.handler(data) // Run handlers asynchronously
	}
}

// Global instance
var GlobalEventBus = NewEventBus()
