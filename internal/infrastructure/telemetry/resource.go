// Package telemetry wires OpenTelemetry traces, metrics and logs for the seller service.
//
// Every provider follows the same lifecycle: construct with a config, get a
// no-op wrapper when disabled, Shutdown on exit. Exporters speak OTLP over gRPC.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported as service.version on every exported signal.
var ServiceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

func serviceResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdownWithTimeout bounds a provider shutdown and logs its outcome.
func shutdownWithTimeout(ctx context.Context, logger *zap.Logger, signal string, fn func(context.Context) error) error {
	logger.Info("Shutting down OpenTelemetry provider", zap.String("signal", signal))

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := fn(shutdownCtx); err != nil {
		logger.Error("Error shutting down provider", zap.String("signal", signal), zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", signal, err)
	}
	return nil
}
