package seller

import (
	"regexp"
	"strings"
	"time"

	"github.com/venta/backend/internal/domain/shared"
)

// Category represents how a seller was onboarded
type Category string

const (
	CategoryInternal Category = "INTERNAL" // Employee-backed, sourced from the HR directory
	CategoryExternal Category = "EXTERNAL" // Contractor, self-declared data
)

// IsValid returns true if the category is one of the known values
func (c Category) IsValid() bool {
	return c == CategoryInternal || c == CategoryExternal
}

// ParseCategory converts a case-insensitive string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", shared.NewDomainError("INVALID_CATEGORY", "Seller category must be INTERNAL or EXTERNAL")
	}
	return c, nil
}

// Status represents whether a seller can operate
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IsValid returns true if the status is one of the known values
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseStatus converts a case-insensitive string into a Status
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Seller status must be ACTIVE or INACTIVE")
	}
	return st, nil
}

// DocumentType is the identity document an external seller declared
type DocumentType string

const (
	DocumentTypeDNI      DocumentType = "DNI"
	DocumentTypeCE       DocumentType = "CE" // Carné de extranjería
	DocumentTypePassport DocumentType = "PASSPORT"
)

// IsValid returns true if the document type is known
func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTypeDNI, DocumentTypeCE, DocumentTypePassport:
		return true
	default:
		return false
	}
}

const (
	DNILength      = 8
	MaxPhoneLength = 15
	TaxIDLength    = 11
)

// Seller is the aggregate root of the seller lifecycle context
type Seller struct {
	shared.BaseAggregateRoot
	DNI          string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Address      string
	RegisteredOn time.Time // Calendar date, never changes after creation
	Category     Category
	Status       Status
	Branch       *Branch

	// External sellers only
	TaxID        string
	BankAccount  string
	BankName     string
	DocumentType DocumentType

	// Internal sellers only
	EmployeeRef int64
}

// IsActive returns true if the seller is active
func (s *Seller) IsActive() bool {
	return s.Status == StatusActive
}

// IsInternal returns true for employee-backed sellers
func (s *Seller) IsInternal() bool {
	return s.Category == CategoryInternal
}

// FullName returns the display name used in notifications
func (s *Seller) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// BranchID returns the id of the assigned branch, or 0 when none is set
func (s *Seller) BranchID() int64 {
	if s.Branch == nil {
		return 0
	}
	return s.Branch.ID
}

// BranchName returns the name of the assigned branch
func (s *Seller) BranchName() string {
	if s.Branch == nil {
		return ""
	}
	return s.Branch.Name
}

// ChangeStatus overwrites the seller status. Any status may move to any other.
func (s *Seller) ChangeStatus(newStatus Status) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Seller status must be ACTIVE or INACTIVE")
	}
	s.Status = newStatus
	s.Touch()
	return nil
}

// ReassignBranch replaces the branch relation.
// It is the only code path that sets a seller's branch.
func (s *Seller) ReassignBranch(branch *Branch) error {
	if branch == nil {
		return shared.NewDomainError("INVALID_BRANCH", "Seller must belong to a branch")
	}
	s.Branch = branch
	s.Touch()
	return nil
}

// Validate checks the aggregate invariants before persistence
func (s *Seller) Validate() error {
	if err := ValidateDNI(s.DNI); err != nil {
		return err
	}
	if strings.TrimSpace(s.FirstName) == "" {
		return shared.NewDomainError("INVALID_FIRST_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(s.LastName) == "" {
		return shared.NewDomainError("INVALID_LAST_NAME", "Last name cannot be empty")
	}
	if err := validateEmail(s.Email); err != nil {
		return err
	}
	if err := validatePhone(s.Phone); err != nil {
		return err
	}
	if !s.Category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Seller category must be INTERNAL or EXTERNAL")
	}
	if !s.Status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Seller status must be ACTIVE or INACTIVE")
	}
	if s.Branch == nil {
		return shared.NewDomainError("INVALID_BRANCH", "Seller must belong to a branch")
	}
	switch s.Category {
	case CategoryExternal:
		if err := validateTaxID(s.TaxID); err != nil {
			return err
		}
	case CategoryInternal:
		if s.TaxID != "" {
			return shared.NewDomainError("UNEXPECTED_TAX_ID", "Internal sellers cannot carry a tax id")
		}
	}
	return nil
}

// ValidateDNI checks the identity document is exactly eight digits
func ValidateDNI(dni string) error {
	if len(dni) != DNILength {
		return shared.NewDomainError("INVALID_DNI", "DNI must have exactly 8 digits")
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_DNI", "DNI must contain only digits")
		}
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > MaxPhoneLength {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 15 characters")
	}
	return nil
}

func validateTaxID(taxID string) error {
	if taxID == "" {
		return shared.NewDomainError("MISSING_TAX_ID", "External sellers must declare a tax id (RUC)")
	}
	if len(taxID) != TaxIDLength {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax id (RUC) must have exactly 11 digits")
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_TAX_ID", "Tax id (RUC) must contain only digits")
		}
	}
	return nil
}

// dateOf truncates a timestamp to its calendar date in UTC
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
