package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Store is a byte-oriented key/value cache with per-entry expiration
type Store interface {
	// Get returns the cached value or ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Close releases the resources held by the store
	Close() error
}
