package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormSellerRepository) WithTx(tx *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: tx}
}

// FindByID finds a seller by ID with its branch loaded
func (r *GormSellerRepository) FindByID(ctx context.Context, id int64) (*seller.Seller, error) {
	var model models.SellerModel
	if err := r.db.WithContext(ctx).Preload("Branch").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, seller.ErrSellerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns the sellers matching the filter ordered by ID
func (r *GormSellerRepository) FindAll(ctx context.Context, filter seller.SellerFilter) ([]seller.Seller, error) {
	var sellerModels []models.SellerModel
	err := r.db.WithContext(ctx).
		Preload("Branch").
		Scopes(SellerFilterScope(filter)).
		Order("id").
		Find(&sellerModels).Error
	if err != nil {
		return nil, err
	}

	sellers := make([]seller.Seller, len(sellerModels))
	for i := range sellerModels {
		sellers[i] = *sellerModels[i].ToDomain()
	}
	return sellers, nil
}

// Save creates or updates a seller. The assigned branch must already exist.
func (r *GormSellerRepository) Save(ctx context.Context, s *seller.Seller) error {
	if s.IsNew() {
		model := models.SellerModelFromDomain(s)
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
			return translateSellerError(err)
		}
		s.ID = model.ID
		s.CreatedAt = model.CreatedAt
		s.UpdatedAt = model.UpdatedAt
		return nil
	}

	s.IncrementVersion()
	model := models.SellerModelFromDomain(s)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateSellerError(err)
	}
	s.UpdatedAt = model.UpdatedAt
	return nil
}

// ExistsByDocument checks if a seller with the given DNI exists
func (r *GormSellerRepository) ExistsByDocument(ctx context.Context, dni string) (bool, error) {
	return r.exists(ctx, "dni = ?", dni)
}

// ExistsByEmail checks if a seller with the given email exists
func (r *GormSellerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// ExistsByTaxID checks if a seller with the given tax id exists
func (r *GormSellerRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	if taxID == "" {
		return false, nil
	}
	return r.exists(ctx, "tax_id = ?", taxID)
}

func (r *GormSellerRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SellerModel{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SellerFilterScope translates a SellerFilter into query conditions joined with AND
func SellerFilterScope(f seller.SellerFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category != nil {
			db = db.Where("category = ?", string(*f.Category))
		}
		if f.Status != nil {
			db = db.Where("status = ?", string(*f.Status))
		}
		if f.BranchID != nil {
			db = db.Where("branch_id = ?", *f.BranchID)
		}
		if f.DocumentContains != "" {
			db = db.Where(`dni LIKE ? ESCAPE '\'`, "%"+escapeLike(f.DocumentContains)+"%")
		}
		return db
	}
}

// escapeLike neutralizes LIKE wildcards in user input
func escapeLike(s string) string {
	var out []rune
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func translateSellerError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return seller.ErrDuplicateSeller
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return seller.ErrBranchNotFound
	}
	return fmt.Errorf("failed to save seller: %w", err)
}

// GormTransactor runs seller writes inside a database transaction
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new GormTransactor
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction calls fn with a seller repository bound to a new transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context, sellers seller.SellerRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormSellerRepository(tx))
	})
}

// Ensure GormSellerRepository implements SellerRepository
var _ seller.SellerRepository = (*GormSellerRepository)(nil)
