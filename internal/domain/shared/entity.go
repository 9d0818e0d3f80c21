// Package shared holds the building blocks every bounded context uses:
// entities, aggregate roots, domain errors, domain events and the event bus ports.
package shared

import "time"

// BaseEntity carries identity and timestamps. ID stays 0 until the database
// sequence assigns one on first save.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNew reports whether the entity has never been saved
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}

// Touch refreshes UpdatedAt
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates an unsaved entity stamped with the current time
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}
