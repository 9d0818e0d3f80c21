package shared

import "context"

// EventHandler reacts to published domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types to deliver. Nil means all of them.
	EventTypes() []string
}

// EventPublisher is the port the application layer publishes through
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler subscriptions. Subscribe with no explicit
// types uses handler.EventTypes().
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is both a publisher and a subscriber
type EventBus interface {
	EventPublisher
	EventSubscriber
}
