package seller

import (
	"strings"

	"github.com/venta/backend/internal/domain/shared"
)

// Editable field names reported by ApplyChanges
const (
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldBankAccount = "bank_account"
	FieldBankName    = "bank_name"
	FieldBranch      = "branch"
	FieldStatus      = "status"
)

// EditRequest is a partial update. A nil field is left untouched.
type EditRequest struct {
	LastName    *string
	Email       *string
	Phone       *string
	Address     *string
	BankAccount *string
	BankName    *string
	BranchID    *int64
	Status      *Status
}

// IsEmpty returns true if the request changes nothing
func (r EditRequest) IsEmpty() bool {
	return r.LastName == nil && r.Email == nil && r.Phone == nil && r.Address == nil &&
		r.BankAccount == nil && r.BankName == nil && r.BranchID == nil && r.Status == nil
}

// Validate checks the supplied values
func (r EditRequest) Validate() error {
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return shared.NewDomainError("INVALID_LAST_NAME", "Last name cannot be empty")
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Phone != nil {
		if err := validatePhone(*r.Phone); err != nil {
			return err
		}
	}
	if r.Status != nil && !r.Status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Seller status must be ACTIVE or INACTIVE")
	}
	return nil
}

// EditStrategy applies a partial update to a seller
type EditStrategy interface {
	// ApplyChanges mutates the seller and returns the names of the fields
	// whose value actually changed
	ApplyChanges(s *Seller, req EditRequest, newBranch *Branch) []string
}

// ExternalEdit is the default edit strategy. Bank fields are only applied to
// external sellers.
type ExternalEdit struct{}

// NewExternalEdit creates a new ExternalEdit
func NewExternalEdit() *ExternalEdit {
	return &ExternalEdit{}
}

// ApplyChanges implements EditStrategy
func (ExternalEdit) ApplyChanges(s *Seller, req EditRequest, newBranch *Branch) []string {
	var changed []string

	set := func(field string, dst *string, v *string) {
		if v == nil || *dst == *v {
			return
		}
		*dst = *v
		changed = append(changed, field)
	}

	set(FieldLastName, &s.LastName, req.LastName)
	set(FieldEmail, &s.Email, req.Email)
	set(FieldPhone, &s.Phone, req.Phone)
	set(FieldAddress, &s.Address, req.Address)
	if s.Category == CategoryExternal {
		set(FieldBankAccount, &s.BankAccount, req.BankAccount)
		set(FieldBankName, &s.BankName, req.BankName)
	}

	if newBranch != nil && newBranch.ID != s.BranchID() {
		if err := s.ReassignBranch(newBranch); err == nil {
			changed = append(changed, FieldBranch)
		}
	}
	if req.Status != nil && *req.Status != s.Status {
		if err := s.ChangeStatus(*req.Status); err == nil {
			changed = append(changed, FieldStatus)
		}
	}

	if len(changed) > 0 {
		s.Touch()
	}
	return changed
}

var _ EditStrategy = ExternalEdit{}
