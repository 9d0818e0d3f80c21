package shared

// BaseAggregateRoot is embedded by aggregate roots. Version starts at 1 and
// is bumped on every successful save.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// IncrementVersion bumps the version after a save
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates an unsaved aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}
