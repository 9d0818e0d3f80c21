// Package testutil provides test helpers shared by the integration suites.
package testutil

import (
	"context"
	"sync"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// RecordingHandler is a shared.EventHandler that keeps every event it
// receives, optionally failing each call with a fixed error.
type RecordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewRecordingHandler subscribes to eventTypes, or to everything when none are given
func NewRecordingHandler(eventTypes ...string) *RecordingHandler {
	return &RecordingHandler{eventTypes: eventTypes}
}

// EventTypes implements shared.EventHandler
func (h *RecordingHandler) EventTypes() []string {
	if len(h.eventTypes) == 0 {
		return nil
	}
	return h.eventTypes
}

// Handle implements shared.EventHandler
func (h *RecordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// FailWith makes every later Handle call return err
func (h *RecordingHandler) FailWith(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

// Handled returns a copy of the received events
func (h *RecordingHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

// Types returns the event types received, in order
func (h *RecordingHandler) Types() []string {
	events := h.Handled()
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}

// Lifecycle returns the received events that are seller lifecycle events
func (h *RecordingHandler) Lifecycle() []seller.LifecycleEvent {
	var out []seller.LifecycleEvent
	for _, e := range h.Handled() {
		if le, ok := e.(seller.LifecycleEvent); ok {
			out = append(out, le)
		}
	}
	return out
}

// Reset clears recorded events and the configured error
func (h *RecordingHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = nil
	h.err = nil
}
