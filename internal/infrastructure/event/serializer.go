package event

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// EventSerializer encodes domain events as JSON and decodes them back into
// their concrete type, looked up by event type name.
type EventSerializer struct {
	mu        sync.RWMutex
	factories map[string]func() shared.DomainEvent
}

// NewEventSerializer creates a serializer with no decodable types
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{factories: make(map[string]func() shared.DomainEvent)}
}

// NewSellerEventSerializer creates a serializer that decodes every seller lifecycle event
func NewSellerEventSerializer() *EventSerializer {
	s := NewEventSerializer()
	s.Register(seller.EventTypeSellerCreated, func() shared.DomainEvent { return &seller.SellerCreatedEvent{} })
	s.Register(seller.EventTypeSellerModified, func() shared.DomainEvent { return &seller.SellerModifiedEvent{} })
	s.Register(seller.EventTypeSellerDeactivated, func() shared.DomainEvent { return &seller.SellerDeactivatedEvent{} })
	s.Register(seller.EventTypeSellerReactivated, func() shared.DomainEvent { return &seller.SellerReactivatedEvent{} })
	s.Register(seller.EventTypeSellerBranchChanged, func() shared.DomainEvent { return &seller.SellerBranchChangedEvent{} })
	return s
}

// Register makes eventType decodable. newEvent must return a fresh pointer on each call.
func (s *EventSerializer) Register(eventType string, newEvent func() shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factories[eventType] = newEvent
}

// Serialize encodes an event
func (s *EventSerializer) Serialize(e shared.DomainEvent) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.EventType(), err)
	}
	return data, nil
}

// Deserialize decodes data into the concrete event registered for eventType
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	newEvent, ok := s.factories[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	e := newEvent()
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("decode %s event: %w", eventType, err)
	}
	return e, nil
}
