package seller

import (
	"strings"

	"github.com/venta/backend/internal/domain/shared"
)

// BranchType classifies a branch (sede)
type BranchType string

const (
	BranchTypeStore               BranchType = "STORE"
	BranchTypeWarehouseAffiliated BranchType = "WAREHOUSE_AFFILIATED"
)

// IsValid returns true if the branch type is known
func (t BranchType) IsValid() bool {
	return t == BranchTypeStore || t == BranchTypeWarehouseAffiliated
}

// Branch is a physical location sellers are assigned to
type Branch struct {
	shared.BaseEntity
	Name         string
	Address      string
	Type         BranchType
	Capacity     int
	Active       bool
	WarehouseRef string // Optional external warehouse reference
}

// NewBranch creates a new active branch
func NewBranch(name, address string, branchType BranchType, capacity int) (*Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot exceed 100 characters")
	}
	if !branchType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BRANCH_TYPE", "Branch type must be STORE or WAREHOUSE_AFFILIATED")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Branch capacity must be positive")
	}

	return &Branch{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
		Type:       branchType,
		Capacity:   capacity,
		Active:     true,
	}, nil
}

// LinkWarehouse records the external warehouse this branch is affiliated with
func (b *Branch) LinkWarehouse(ref string) {
	b.WarehouseRef = strings.TrimSpace(ref)
	b.Touch()
}

// Deactivate closes the branch for new assignments
func (b *Branch) Deactivate() {
	b.Active = false
	b.Touch()
}

// Activate reopens the branch
func (b *Branch) Activate() {
	b.Active = true
	b.Touch()
}
