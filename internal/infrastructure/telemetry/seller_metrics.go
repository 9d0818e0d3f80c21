package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SellerMetrics holds the seller lifecycle instruments.
type SellerMetrics struct {
	lifecycleEvents  *Counter
	directoryLookups *Histogram
}

// NewSellerMetrics registers the seller instruments on meter.
func NewSellerMetrics(meter metric.Meter) (*SellerMetrics, error) {
	events, err := NewCounter(meter,
		"venta_seller_lifecycle_events_total",
		"Seller lifecycle events published, by kind and category",
		"{event}",
	)
	if err != nil {
		return nil, err
	}

	lookups, err := NewHistogram(meter,
		"venta_directory_lookup_duration_seconds",
		"HR directory lookup latency, by outcome",
		"s",
		LookupDurationBuckets...,
	)
	if err != nil {
		return nil, err
	}

	return &SellerMetrics{lifecycleEvents: events, directoryLookups: lookups}, nil
}

// RecordLifecycleEvent counts one published lifecycle event.
func (m *SellerMetrics) RecordLifecycleEvent(ctx context.Context, kind, category string) {
	m.lifecycleEvents.Inc(ctx, AttrEventKind.String(kind), AttrCategory.String(category))
}

// RecordDirectoryLookup records how long a directory lookup took.
func (m *SellerMetrics) RecordDirectoryLookup(ctx context.Context, outcome string, elapsed time.Duration) {
	m.directoryLookups.RecordDuration(ctx, elapsed, AttrLookupOutcome.String(outcome))
}
