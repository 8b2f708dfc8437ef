package event

import (
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/calgrid/internal/logging"
)

// Handler receives published events.
type Handler func(Event)

// wildcard is the pseudo event type SubscribeAll registers under.
const wildcard = "*"

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous publish/subscribe hub. Handlers run on the publishing
// goroutine, so a handler that mutates a pointer event is seen by the
// publisher once Publish returns.
type Bus struct {
	mu     sync.RWMutex
	byType map[string][]subscription
	typeOf map[string]string // subscription ID -> event type
	nextID atomic.Uint64
	logger *logging.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report panicking handlers.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger.WithComponent("event")
		}
	}
}

// NewBus returns an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{logger: logging.NopLogger()}
	b.reset()
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) reset() {
	b.byType = make(map[string][]subscription)
	b.typeOf = make(map[string]string)
}

// Subscribe registers handler for one event type and returns the ID to
// pass to Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.byType[eventType] = append(b.byType[eventType], subscription{id: id, handler: handler})
	b.typeOf[id] = eventType
	return id
}

// SubscribeAll registers handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription and reports whether it existed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	eventType, ok := b.typeOf[id]
	if !ok {
		return false
	}
	delete(b.typeOf, id)
	// Publish works on a copy, so the slice can be edited in place.
	rest := slices.DeleteFunc(b.byType[eventType], func(s subscription) bool { return s.id == id })
	if len(rest) == 0 {
		delete(b.byType, eventType)
	} else {
		b.byType[eventType] = rest
	}
	return true
}

// HasSubscribers reports whether publishing eventType would reach a handler,
// letting the layout skip building events nobody listens to.
func (b *Bus) HasSubscribers(eventType string) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byType[eventType]) > 0 || len(b.byType[wildcard]) > 0
}

// Publish calls the handlers of the event's type in subscription order, then
// the SubscribeAll handlers. A panicking handler is logged and skipped.
// Publishing on a nil Bus does nothing.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	subs := slices.Concat(b.byType[event.EventType()], b.byType[wildcard])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(sub.handler, event)
	}
}

func (b *Bus) deliver(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event_type", event.EventType(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	handler(event)
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.typeOf)
}
