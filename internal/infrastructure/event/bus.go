// Package event provides the in-process event bus that fans seller
// lifecycle events out to the notification observers.
package event

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/shared"
	"github.com/venta/backend/internal/infrastructure/logger"
)

// InMemoryEventBus delivers each event synchronously to every matching
// handler, in the order the handlers subscribed. A handler that fails or
// panics is logged and skipped; delivery to later handlers continues.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

// NewInMemoryEventBus creates an empty bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{registry: NewHandlerRegistry(), logger: logger}
}

// Publish implements shared.EventPublisher. It never returns an error.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		if e == nil {
			continue
		}
		for _, h := range b.registry.GetHandlers(e.EventType()) {
			err := deliver(ctx, h, e)
			if err == nil {
				continue
			}
			logger.WithTraceContext(ctx, b.logger).Error("Event handler failed",
				zap.String("event_type", e.EventType()),
				zap.String("event_id", e.EventID().String()),
				zap.Int64("aggregate_id", e.AggregateID()),
				zap.String("handler", handlerName(h)),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Subscribe adds handler for eventTypes, falling back to handler.EventTypes().
// No types at all subscribes the handler to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Event handler subscribed",
		zap.String("handler", handlerName(handler)),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("Event handler unsubscribed", zap.String("handler", handlerName(handler)))
}

// HandlerCount returns the number of subscribed handlers
func (b *InMemoryEventBus) HandlerCount() int {
	return b.registry.Len()
}

func deliver(ctx context.Context, h shared.EventHandler, e shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, e)
}

func handlerName(h shared.EventHandler) string {
	return fmt.Sprintf("%T", h)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
