package directory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/infrastructure/cache"
)

// employeeKeyPrefix namespaces employee entries inside the cache store
const employeeKeyPrefix = "employee:"

// CachedDirectory is a read-through cache in front of another directory.
// Only successful lookups are cached, so a newly hired employee becomes
// visible as soon as the HR system knows about them.
type CachedDirectory struct {
	next   seller.EmployeeDirectory
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedDirectory wraps next with a cache of the given TTL
func NewCachedDirectory(next seller.EmployeeDirectory, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedDirectory{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Lookup serves from cache when possible, otherwise delegates and caches the hit
func (d *CachedDirectory) Lookup(ctx context.Context, dni string) (*seller.Employee, error) {
	key := employeeKeyPrefix + dni

	raw, err := d.store.Get(ctx, key)
	switch {
	case err == nil:
		var employee seller.Employee
		jsonErr := json.Unmarshal(raw, &employee)
		if jsonErr == nil {
			return &employee, nil
		}
		d.logger.Warn("discarding malformed cached employee", zap.String("dni", dni), zap.Error(jsonErr))
	case !errors.Is(err, cache.ErrCacheMiss):
		d.logger.Warn("employee cache read failed", zap.String("dni", dni), zap.Error(err))
	}

	employee, err := d.next.Lookup(ctx, dni)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(employee); jsonErr == nil {
		if setErr := d.store.Set(ctx, key, payload, d.ttl); setErr != nil {
			d.logger.Warn("employee cache write failed", zap.String("dni", dni), zap.Error(setErr))
		}
	}
	return employee, nil
}

var _ seller.EmployeeDirectory = (*CachedDirectory)(nil)
