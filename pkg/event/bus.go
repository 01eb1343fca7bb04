// Package event provides a small in-process publish/subscribe bus used to
// decouple admin mutations from the views that must re-fetch after them.
// There is no ordering guarantee among subscribers.
package event

import "sync"

// Well-known topics.
const (
	TopicCurrencyUpdated = "currency.updated"
	TopicConfigUpdated   = "config.updated"
)

// Handler receives the topic that fired. Handlers run synchronously on the
// publishing goroutine; keep them cheap (typically: invalidate a cache).
type Handler func(topic string)

// Bus fans a published topic out to every subscriber of that topic.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]Handler)}
}

// Subscribe registers a handler for a topic. There is no unsubscribe:
// subscribers live for the process, matching the app-scoped lifecycle of
// the caches they invalidate.
func (b *Bus) Subscribe(topic string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], h)
}

// Publish invokes every handler subscribed to topic. Fire-and-forget: a
// topic with no subscribers is not an error.
func (b *Bus) Publish(topic string) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.subs[topic]))
	copy(handlers, b.subs[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(topic)
	}
}
