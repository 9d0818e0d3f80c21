package seller

import (
	"context"

	"github.com/venta/backend/internal/domain/seller"
)

// Transactor runs seller writes inside a database transaction.
// The repository passed to fn is bound to that transaction; the transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, sellers seller.SellerRepository) error) error
}

// NoOpTransactor runs fn against a plain repository without a transaction.
// This is useful for testing.
type NoOpTransactor struct {
	sellers seller.SellerRepository
}

// NewNoOpTransactor creates a NoOpTransactor over sellers
func NewNoOpTransactor(sellers seller.SellerRepository) *NoOpTransactor {
	return &NoOpTransactor{sellers: sellers}
}

// WithinTransaction calls fn with the wrapped repository
func (t *NoOpTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, sellers seller.SellerRepository) error) error {
	return fn(ctx, t.sellers)
}

var _ Transactor = (*NoOpTransactor)(nil)
