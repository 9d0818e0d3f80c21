// Package directory provides adapters for the HR employee directory:
// an in-process simulated roster, an HTTP client behind a circuit breaker
// and a read-through cache decorator.
package directory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/infrastructure/cache"
	"github.com/venta/backend/internal/infrastructure/config"
)

// New builds the directory selected by cfg.Mode. When store is non-nil and
// cfg.CacheTTL is positive, the result is wrapped in a CachedDirectory.
func New(cfg config.DirectoryConfig, store cache.Store, logger *zap.Logger) (seller.EmployeeDirectory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var base seller.EmployeeDirectory
	switch cfg.Mode {
	case "", config.DirectoryModeSimulated:
		base = NewSimulatedDirectory(logger)
	case config.DirectoryModeHTTP:
		httpDir, err := NewHTTPDirectory(cfg, logger)
		if err != nil {
			return nil, err
		}
		base = httpDir
	default:
		return nil, fmt.Errorf("directory: unknown mode %q", cfg.Mode)
	}

	if store == nil || cfg.CacheTTL <= 0 {
		return base, nil
	}
	return NewCachedDirectory(base, store, cfg.CacheTTL, logger), nil
}
