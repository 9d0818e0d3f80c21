package seller

import (
	"context"
)

// SellerRepository defines the persistence operations for sellers
type SellerRepository interface {
	// FindByID finds a seller by ID with its branch loaded
	FindByID(ctx context.Context, id int64) (*Seller, error)

	// FindAll returns sellers matching the filter, ordered by ID
	FindAll(ctx context.Context, filter SellerFilter) ([]Seller, error)

	// Save creates or updates a seller
	Save(ctx context.Context, seller *Seller) error

	ExistsByDocument(ctx context.Context, dni string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
}

// BranchRepository defines the persistence operations for branches
type BranchRepository interface {
	FindByID(ctx context.Context, id int64) (*Branch, error)
	FindAll(ctx context.Context) ([]Branch, error)
	Save(ctx context.Context, branch *Branch) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
