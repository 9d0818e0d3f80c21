package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}
	t.Fatalf("metric %s not collected", name)
	return nil
}

func TestSellerMetrics_RecordLifecycleEvent(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewSellerMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordLifecycleEvent(ctx, "CREATED", "EXTERNAL")
	m.RecordLifecycleEvent(ctx, "CREATED", "EXTERNAL")
	m.RecordLifecycleEvent(ctx, "DEACTIVATED", "INTERNAL")

	sum, ok := collect(t, reader, "venta_seller_lifecycle_events_total").(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 2)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		kind, _ := dp.Attributes.Value(AttrEventKind)
		category, _ := dp.Attributes.Value(AttrCategory)
		counts[kind.AsString()+"/"+category.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"CREATED/EXTERNAL": 2, "DEACTIVATED/INTERNAL": 1}, counts)
}

func TestSellerMetrics_RecordDirectoryLookup(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewSellerMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.RecordDirectoryLookup(context.Background(), "found", 30*time.Millisecond)

	hist, ok := collect(t, reader, "venta_directory_lookup_duration_seconds").(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(1), dp.Count)
	assert.InDelta(t, 0.03, dp.Sum, 1e-9)
	outcome, ok := dp.Attributes.Value(AttrLookupOutcome)
	require.True(t, ok)
	assert.Equal(t, "found", outcome.AsString())
}

func TestSellerMetrics_NoopMeter(t *testing.T) {
	m, err := NewSellerMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		m.RecordLifecycleEvent(context.Background(), "CREATED", "INTERNAL")
		m.RecordDirectoryLookup(context.Background(), "not_found", time.Second)
	})
}
