package seller

import (
	"github.com/venta/backend/internal/domain/shared"
)

// AggregateTypeSeller is the aggregate type for seller events
const AggregateTypeSeller = "Seller"

// Event types for the seller lifecycle
const (
	EventTypeSellerCreated       = "SellerCreated"
	EventTypeSellerModified      = "SellerModified"
	EventTypeSellerDeactivated   = "SellerDeactivated"
	EventTypeSellerReactivated   = "SellerReactivated"
	EventTypeSellerBranchChanged = "SellerBranchChanged"
)

// EventKind is the business-level classification of a lifecycle event
type EventKind string

const (
	KindCreated       EventKind = "CREATED"
	KindModified      EventKind = "MODIFIED"
	KindDeactivated   EventKind = "DEACTIVATED"
	KindReactivated   EventKind = "REACTIVATED"
	KindBranchChanged EventKind = "BRANCH_CHANGED"
)

// AllEventTypes lists every lifecycle event type in declaration order
func AllEventTypes() []string {
	return []string{
		EventTypeSellerCreated,
		EventTypeSellerModified,
		EventTypeSellerDeactivated,
		EventTypeSellerReactivated,
		EventTypeSellerBranchChanged,
	}
}

// SellerRef is the snapshot of the seller carried by every lifecycle event
type SellerRef struct {
	SellerID   int64    `json:"seller_id"`
	SellerName string   `json:"seller_name"`
	DNI        string   `json:"dni"`
	Email      string   `json:"email"`
	Category   Category `json:"category"`
}

func refOf(s *Seller) SellerRef {
	return SellerRef{
		SellerID:   s.ID,
		SellerName: s.FullName(),
		DNI:        s.DNI,
		Email:      s.Email,
		Category:   s.Category,
	}
}

// LifecycleEvent is implemented by every seller lifecycle event
type LifecycleEvent interface {
	shared.DomainEvent
	Kind() EventKind
	Seller() SellerRef
}

type lifecycleBase struct {
	shared.BaseDomainEvent
	Ref SellerRef `json:"seller"`
}

// Seller returns the seller snapshot
func (e *lifecycleBase) Seller() SellerRef {
	return e.Ref
}

func newLifecycleBase(eventType string, s *Seller) lifecycleBase {
	return lifecycleBase{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeSeller, s.ID),
		Ref:             refOf(s),
	}
}

// SellerCreatedEvent is published after a seller is registered
type SellerCreatedEvent struct {
	lifecycleBase
	BranchName string `json:"branch_name"`
}

// NewSellerCreatedEvent creates a new SellerCreatedEvent
func NewSellerCreatedEvent(s *Seller) *SellerCreatedEvent {
	return &SellerCreatedEvent{
		lifecycleBase: newLifecycleBase(EventTypeSellerCreated, s),
		BranchName:    s.BranchName(),
	}
}

// Kind returns the event kind
func (e *SellerCreatedEvent) Kind() EventKind { return KindCreated }

// SellerModifiedEvent is published after editable attributes change
type SellerModifiedEvent struct {
	lifecycleBase
	ChangedFields []string `json:"changed_fields"`
}

// NewSellerModifiedEvent creates a new SellerModifiedEvent
func NewSellerModifiedEvent(s *Seller, changedFields []string) *SellerModifiedEvent {
	fields := make([]string, len(changedFields))
	copy(fields, changedFields)
	return &SellerModifiedEvent{
		lifecycleBase: newLifecycleBase(EventTypeSellerModified, s),
		ChangedFields: fields,
	}
}

// Kind returns the event kind
func (e *SellerModifiedEvent) Kind() EventKind { return KindModified }

// SellerDeactivatedEvent is published after a seller becomes inactive
type SellerDeactivatedEvent struct {
	lifecycleBase
}

// NewSellerDeactivatedEvent creates a new SellerDeactivatedEvent
func NewSellerDeactivatedEvent(s *Seller) *SellerDeactivatedEvent {
	return &SellerDeactivatedEvent{lifecycleBase: newLifecycleBase(EventTypeSellerDeactivated, s)}
}

// Kind returns the event kind
func (e *SellerDeactivatedEvent) Kind() EventKind { return KindDeactivated }

// SellerReactivatedEvent is published after an inactive seller becomes active again
type SellerReactivatedEvent struct {
	lifecycleBase
}

// NewSellerReactivatedEvent creates a new SellerReactivatedEvent
func NewSellerReactivatedEvent(s *Seller) *SellerReactivatedEvent {
	return &SellerReactivatedEvent{lifecycleBase: newLifecycleBase(EventTypeSellerReactivated, s)}
}

// Kind returns the event kind
func (e *SellerReactivatedEvent) Kind() EventKind { return KindReactivated }

// SellerBranchChangedEvent is published after a seller moves to another branch
type SellerBranchChangedEvent struct {
	lifecycleBase
	OldBranchName string `json:"old_branch_name"`
	NewBranchName string `json:"new_branch_name"`
}

// NewSellerBranchChangedEvent creates a new SellerBranchChangedEvent
func NewSellerBranchChangedEvent(s *Seller, oldBranchName string) *SellerBranchChangedEvent {
	return &SellerBranchChangedEvent{
		lifecycleBase: newLifecycleBase(EventTypeSellerBranchChanged, s),
		OldBranchName: oldBranchName,
		NewBranchName: s.BranchName(),
	}
}

// Kind returns the event kind
func (e *SellerBranchChangedEvent) Kind() EventKind { return KindBranchChanged }

// StatusEvent returns the lifecycle event matching a status transition
func StatusEvent(s *Seller) LifecycleEvent {
	if s.IsActive() {
		return NewSellerReactivatedEvent(s)
	}
	return NewSellerDeactivatedEvent(s)
}

var (
	_ LifecycleEvent = (*SellerCreatedEvent)(nil)
	_ LifecycleEvent = (*SellerModifiedEvent)(nil)
	_ LifecycleEvent = (*SellerDeactivatedEvent)(nil)
	_ LifecycleEvent = (*SellerReactivatedEvent)(nil)
	_ LifecycleEvent = (*SellerBranchChangedEvent)(nil)
)
