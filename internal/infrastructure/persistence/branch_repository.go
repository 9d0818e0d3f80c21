package persistence

import (
	"context"
	"errors"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
	"github.com/venta/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormBranchRepository) WithTx(tx *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: tx}
}

// FindByID finds a branch by ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id int64) (*seller.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, seller.ErrBranchNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every branch ordered by name
func (r *GormBranchRepository) FindAll(ctx context.Context) ([]seller.Branch, error) {
	var branchModels []models.BranchModel
	if err := r.db.WithContext(ctx).Order("name").Find(&branchModels).Error; err != nil {
		return nil, err
	}
	branches := make([]seller.Branch, len(branchModels))
	for i := range branchModels {
		branches[i] = *branchModels[i].ToDomain()
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, b *seller.Branch) error {
	model := models.BranchModelFromDomain(b)
	var err error
	if b.IsNew() {
		err = r.db.WithContext(ctx).Create(model).Error
	} else {
		err = r.db.WithContext(ctx).Save(model).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("DUPLICATE_BRANCH", "A branch with this name already exists")
		}
		return err
	}
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// ExistsByName checks if a branch with the given name exists
func (r *GormBranchRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BranchModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormBranchRepository implements BranchRepository
var _ seller.BranchRepository = (*GormBranchRepository)(nil)
