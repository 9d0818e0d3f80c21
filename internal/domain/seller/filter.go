package seller

import (
	"strings"
)

// SellerFilter is a conjunction of optional seller criteria.
// A nil criterion imposes no constraint.
type SellerFilter struct {
	Category         *Category
	Status           *Status
	BranchID         *int64
	DocumentContains string
}

// IsEmpty returns true if no criterion is set
func (f SellerFilter) IsEmpty() bool {
	return f.Category == nil && f.Status == nil && f.BranchID == nil && f.DocumentContains == ""
}

// Matches evaluates the filter against a seller in memory
func (f SellerFilter) Matches(s *Seller) bool {
	if s == nil {
		return false
	}
	if f.Category != nil && s.Category != *f.Category {
		return false
	}
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.BranchID != nil && s.BranchID() != *f.BranchID {
		return false
	}
	if f.DocumentContains != "" && !strings.Contains(s.DNI, f.DocumentContains) {
		return false
	}
	return true
}

// FilterBuilder composes a SellerFilter fluently
type FilterBuilder struct {
	filter SellerFilter
}

// NewFilterBuilder creates an empty FilterBuilder
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// Category restricts the filter to one category
func (b *FilterBuilder) Category(c Category) *FilterBuilder {
	b.filter.Category = &c
	return b
}

// Status restricts the filter to one status
func (b *FilterBuilder) Status(s Status) *FilterBuilder {
	b.filter.Status = &s
	return b
}

// BranchID restricts the filter to one branch
func (b *FilterBuilder) BranchID(id int64) *FilterBuilder {
	b.filter.BranchID = &id
	return b
}

// DocumentContains restricts the filter to documents containing the fragment.
// A blank fragment is ignored.
func (b *FilterBuilder) DocumentContains(fragment string) *FilterBuilder {
	b.filter.DocumentContains = strings.TrimSpace(fragment)
	return b
}

// Build returns the composed filter
func (b *FilterBuilder) Build() SellerFilter {
	return b.filter
}
