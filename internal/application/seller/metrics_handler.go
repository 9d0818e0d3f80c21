package seller

import (
	"context"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// LifecycleRecorder counts lifecycle events
type LifecycleRecorder interface {
	RecordLifecycleEvent(ctx context.Context, kind, category string)
}

// MetricsHandler feeds every lifecycle event into a LifecycleRecorder
type MetricsHandler struct {
	recorder LifecycleRecorder
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(recorder LifecycleRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// EventTypes returns nil: the handler receives every event
func (h *MetricsHandler) EventTypes() []string {
	return nil
}

// Handle records the event. Non-seller events are ignored.
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lifecycle, ok := event.(seller.LifecycleEvent)
	if !ok || h.recorder == nil {
		return nil
	}
	h.recorder.RecordLifecycleEvent(ctx, string(lifecycle.Kind()), string(lifecycle.Seller().Category))
	return nil
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
