package seller

import (
	"strings"
	"time"

	"github.com/venta/backend/internal/domain/seller"
)

// RegisterSellerRequest represents a request to register a seller.
// Internal sellers only need dni, category and branch_id; their personal
// data comes from the HR directory.
type RegisterSellerRequest struct {
	DNI          string `json:"dni" binding:"required,dni"`
	Category     string `json:"category" binding:"required,oneof=INTERNAL EXTERNAL"`
	BranchID     int64  `json:"branch_id" binding:"required,min=1"`
	FirstName    string `json:"first_name" binding:"omitempty,max=100"`
	LastName     string `json:"last_name" binding:"omitempty,max=100"`
	Email        string `json:"email" binding:"omitempty,email,max=200"`
	Phone        string `json:"phone" binding:"omitempty,max=15"`
	Address      string `json:"address" binding:"omitempty,max=255"`
	TaxID        string `json:"tax_id" binding:"omitempty,len=11,numeric"`
	BankAccount  string `json:"bank_account" binding:"omitempty,max=50"`
	BankName     string `json:"bank_name" binding:"omitempty,max=100"`
	DocumentType string `json:"document_type" binding:"omitempty,oneof=DNI CE PASSPORT"`
}

func (r RegisterSellerRequest) toDomain(category seller.Category) seller.RegistrationRequest {
	return seller.RegistrationRequest{
		DNI:          strings.TrimSpace(r.DNI),
		Category:     category,
		BranchID:     r.BranchID,
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		Email:        strings.TrimSpace(r.Email),
		Phone:        strings.TrimSpace(r.Phone),
		Address:      strings.TrimSpace(r.Address),
		TaxID:        strings.TrimSpace(r.TaxID),
		BankAccount:  strings.TrimSpace(r.BankAccount),
		BankName:     strings.TrimSpace(r.BankName),
		DocumentType: seller.DocumentType(r.DocumentType),
	}
}

// UpdateSellerRequest represents a partial update. Omitted fields are left untouched.
type UpdateSellerRequest struct {
	LastName    *string `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=15"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	BankAccount *string `json:"bank_account" binding:"omitempty,max=50"`
	BankName    *string `json:"bank_name" binding:"omitempty,max=100"`
	BranchID    *int64  `json:"branch_id" binding:"omitempty,min=1"`
	Status      *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r UpdateSellerRequest) toDomain() (seller.EditRequest, error) {
	req := seller.EditRequest{
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		BankAccount: r.BankAccount,
		BankName:    r.BankName,
		BranchID:    r.BranchID,
	}
	if r.Status != nil {
		status, err := seller.ParseStatus(*r.Status)
		if err != nil {
			return seller.EditRequest{}, err
		}
		req.Status = &status
	}
	return req, nil
}

// SellerListFilter represents query parameters for listing sellers
type SellerListFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=INTERNAL EXTERNAL"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	BranchID *int64 `form:"branch_id" binding:"omitempty,min=1"`
	DNI      string `form:"dni" binding:"omitempty,max=8,numeric"`
}

func (f SellerListFilter) toDomain() (seller.SellerFilter, error) {
	b := seller.NewFilterBuilder()
	if f.Category != "" {
		category, err := seller.ParseCategory(f.Category)
		if err != nil {
			return seller.SellerFilter{}, err
		}
		b.Category(category)
	}
	if f.Status != "" {
		status, err := seller.ParseStatus(f.Status)
		if err != nil {
			return seller.SellerFilter{}, err
		}
		b.Status(status)
	}
	if f.BranchID != nil {
		b.BranchID(*f.BranchID)
	}
	b.DocumentContains(f.DNI)
	return b.Build(), nil
}

// SellerResponse represents a seller in API responses
type SellerResponse struct {
	ID           int64     `json:"id"`
	DNI          string    `json:"dni"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	RegisteredOn string    `json:"registered_on"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	BranchID     int64     `json:"branch_id"`
	BranchName   string    `json:"branch_name"`
	TaxID        string    `json:"tax_id,omitempty"`
	BankAccount  string    `json:"bank_account,omitempty"`
	BankName     string    `json:"bank_name,omitempty"`
	DocumentType string    `json:"document_type,omitempty"`
	EmployeeRef  int64     `json:"employee_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// ToSellerResponse converts a domain seller to a response
func ToSellerResponse(s *seller.Seller) *SellerResponse {
	return &SellerResponse{
		ID:           s.ID,
		DNI:          s.DNI,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		FullName:     s.FullName(),
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		RegisteredOn: s.RegisteredOn.Format(time.DateOnly),
		Category:     string(s.Category),
		Status:       string(s.Status),
		BranchID:     s.BranchID(),
		BranchName:   s.BranchName(),
		TaxID:        s.TaxID,
		BankAccount:  s.BankAccount,
		BankName:     s.BankName,
		DocumentType: string(s.DocumentType),
		EmployeeRef:  s.EmployeeRef,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Version:      s.Version,
	}
}

// ToSellerResponses converts a list of sellers
func ToSellerResponses(sellers []seller.Seller) []SellerResponse {
	responses := make([]SellerResponse, len(sellers))
	for i := range sellers {
		responses[i] = *ToSellerResponse(&sellers[i])
	}
	return responses
}

// CreateBranchRequest represents a request to create a branch
type CreateBranchRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Address      string `json:"address" binding:"omitempty,max=255"`
	Type         string `json:"type" binding:"required,oneof=STORE WAREHOUSE_AFFILIATED"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	WarehouseRef string `json:"warehouse_ref" binding:"omitempty,max=50"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	Type         string    `json:"type"`
	Capacity     int       `json:"capacity"`
	Active       bool      `json:"active"`
	WarehouseRef string    `json:"warehouse_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToBranchResponse converts a domain branch to a response
func ToBranchResponse(b *seller.Branch) *BranchResponse {
	return &BranchResponse{
		ID:           b.ID,
		Name:         b.Name,
		Address:      b.Address,
		Type:         string(b.Type),
		Capacity:     b.Capacity,
		Active:       b.Active,
		WarehouseRef: b.WarehouseRef,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
