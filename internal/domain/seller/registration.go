package seller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/venta/backend/internal/domain/shared"
)

// RegistrationRequest carries the caller's data for onboarding a seller.
// Internal registrations only read DNI, Category and BranchID; everything
// else comes from the HR directory.
type RegistrationRequest struct {
	DNI       string
	Category  Category
	BranchID  int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string

	TaxID        string
	BankAccount  string
	BankName     string
	DocumentType DocumentType
}

// Registration is one of the two onboarding strategies.
// The set is closed: only InternalRegistration and ExternalRegistration
// implement it.
type Registration interface {
	// Validate checks the request and rejects duplicates before any lookup
	Validate(ctx context.Context, req RegistrationRequest) error
	// BuildSeller assembles an unsaved seller without a branch
	BuildSeller(ctx context.Context, req RegistrationRequest) (*Seller, error)

	registration()
}

// RegistrationOption configures a registration strategy
type RegistrationOption func(*registrationConfig)

type registrationConfig struct {
	now func() time.Time
}

// WithClock overrides the clock used for the registration date
func WithClock(now func() time.Time) RegistrationOption {
	return func(c *registrationConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newRegistrationConfig(opts []RegistrationOption) registrationConfig {
	cfg := registrationConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// SelectRegistration returns the onboarding strategy for a category
func SelectRegistration(category Category, sellers SellerRepository, directory EmployeeDirectory, opts ...RegistrationOption) (Registration, error) {
	switch category {
	case CategoryInternal:
		return NewInternalRegistration(sellers, directory, opts...), nil
	case CategoryExternal:
		return NewExternalRegistration(sellers, opts...), nil
	default:
		return nil, shared.NewDomainError("INVALID_CATEGORY",
			fmt.Sprintf("Unknown seller category %q", category))
	}
}

// InternalRegistration onboards an employee found in the HR directory
type InternalRegistration struct {
	sellers   SellerRepository
	directory EmployeeDirectory
	cfg       registrationConfig
}

// NewInternalRegistration creates a new InternalRegistration
func NewInternalRegistration(sellers SellerRepository, directory EmployeeDirectory, opts ...RegistrationOption) *InternalRegistration {
	return &InternalRegistration{
		sellers:   sellers,
		directory: directory,
		cfg:       newRegistrationConfig(opts),
	}
}

func (*InternalRegistration) registration() {}

// Validate rejects malformed documents and documents already registered.
// A registered document wins over any other defect in the request.
func (r *InternalRegistration) Validate(ctx context.Context, req RegistrationRequest) error {
	if err := ValidateDNI(req.DNI); err != nil {
		return err
	}
	if err := checkDocumentAvailable(ctx, r.sellers, req.DNI); err != nil {
		return err
	}
	if req.TaxID != "" {
		return shared.NewDomainError("UNEXPECTED_TAX_ID", "Internal sellers cannot carry a tax id")
	}
	return nil
}

// BuildSeller looks the employee up and copies the directory data.
// The seller keeps the requested document, which Validate checked.
func (r *InternalRegistration) BuildSeller(ctx context.Context, req RegistrationRequest) (*Seller, error) {
	employee, err := r.directory.Lookup(ctx, req.DNI)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, NewEmployeeNotFoundError(req.DNI)
	}

	if employee.Email != "" {
		taken, err := r.sellers.ExistsByEmail(ctx, employee.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check seller email: %w", err)
		}
		if taken {
			return nil, NewDuplicateSellerError("email", employee.Email)
		}
	}

	s := &Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DNI:               req.DNI,
		FirstName:         employee.FirstName,
		LastName:          employee.LastName,
		Email:             employee.Email,
		Phone:             employee.Phone,
		Address:           employee.Address,
		RegisteredOn:      dateOf(r.cfg.now()),
		Category:          CategoryInternal,
		Status:            StatusActive,
		EmployeeRef:       employee.EmployeeRef,
	}
	return s, nil
}

// ExternalRegistration onboards a contractor from caller-supplied data
type ExternalRegistration struct {
	sellers SellerRepository
	cfg     registrationConfig
}

// NewExternalRegistration creates a new ExternalRegistration
func NewExternalRegistration(sellers SellerRepository, opts ...RegistrationOption) *ExternalRegistration {
	return &ExternalRegistration{
		sellers: sellers,
		cfg:     newRegistrationConfig(opts),
	}
}

func (*ExternalRegistration) registration() {}

// Validate checks the uniqueness of document, email and tax id and the request shape.
// The document check runs before the shape checks.
func (r *ExternalRegistration) Validate(ctx context.Context, req RegistrationRequest) error {
	if err := ValidateDNI(req.DNI); err != nil {
		return err
	}
	if err := checkDocumentAvailable(ctx, r.sellers, req.DNI); err != nil {
		return err
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return shared.NewDomainError("INVALID_FIRST_NAME", "First name cannot be empty")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return shared.NewDomainError("INVALID_LAST_NAME", "Last name cannot be empty")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	if err := validateTaxID(req.TaxID); err != nil {
		return err
	}
	if req.DocumentType != "" && !req.DocumentType.IsValid() {
		return shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type must be DNI, CE or PASSPORT")
	}

	taken, err := r.sellers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check seller email: %w", err)
	}
	if taken {
		return NewDuplicateSellerError("email", req.Email)
	}
	taken, err = r.sellers.ExistsByTaxID(ctx, req.TaxID)
	if err != nil {
		return fmt.Errorf("failed to check seller tax id: %w", err)
	}
	if taken {
		return NewDuplicateSellerError("tax id", req.TaxID)
	}
	return nil
}

// BuildSeller creates the seller from the request alone
func (r *ExternalRegistration) BuildSeller(_ context.Context, req RegistrationRequest) (*Seller, error) {
	docType := req.DocumentType
	if docType == "" {
		docType = DocumentTypeDNI
	}
	return &Seller{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DNI:               req.DNI,
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		RegisteredOn:      dateOf(r.cfg.now()),
		Category:          CategoryExternal,
		Status:            StatusActive,
		TaxID:             req.TaxID,
		BankAccount:       req.BankAccount,
		BankName:          req.BankName,
		DocumentType:      docType,
	}, nil
}

func checkDocumentAvailable(ctx context.Context, sellers SellerRepository, dni string) error {
	exists, err := sellers.ExistsByDocument(ctx, dni)
	if err != nil {
		return fmt.Errorf("failed to check seller document: %w", err)
	}
	if exists {
		return NewDuplicateSellerError("DNI", dni)
	}
	return nil
}

var (
	_ Registration = (*InternalRegistration)(nil)
	_ Registration = (*ExternalRegistration)(nil)
)
