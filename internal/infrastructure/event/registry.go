package event

import (
	"sync"

	"github.com/venta/backend/internal/domain/shared"
)

// subscription is one registered handler and the event types it accepts.
// An empty type set means the handler receives all events.
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s subscription) accepts(eventType string) bool {
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// HandlerRegistry manages event handler registrations.
// Handlers are kept in a single list so that delivery follows subscription
// order regardless of whether a handler is typed or wildcard.
type HandlerRegistry struct {
	mu            sync.RWMutex
	subscriptions []subscription
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		subscriptions: make([]subscription, 0),
	}
}

// Register adds a handler for specific event types
// If no event types are provided, the handler receives all events.
// Registering the same handler again merges the event types into its
// existing subscription and keeps its original position.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subscriptions {
		if r.subscriptions[i].handler != handler {
			continue
		}
		if len(eventTypes) == 0 {
			r.subscriptions[i].types = nil
			return
		}
		if len(r.subscriptions[i].types) == 0 {
			return // already wildcard
		}
		for _, t := range eventTypes {
			r.subscriptions[i].types[t] = struct{}{}
		}
		return
	}

	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}
	r.subscriptions = append(r.subscriptions, sub)
}

// Unregister removes a handler from all event types
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]subscription, 0, len(r.subscriptions))
	for _, s := range r.subscriptions {
		if s.handler != handler {
			result = append(result, s)
		}
	}
	r.subscriptions = result
}

// GetHandlers returns the handlers for an event type in subscription order.
// The returned slice is a snapshot and is safe to iterate without the lock.
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]shared.EventHandler, 0, len(r.subscriptions))
	for _, s := range r.subscriptions {
		if s.accepts(eventType) {
			result = append(result, s.handler)
		}
	}
	return result
}

// Len returns the number of registered handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscriptions)
}
