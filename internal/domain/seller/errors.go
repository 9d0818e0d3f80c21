package seller

import (
	"fmt"

	"github.com/venta/backend/internal/domain/shared"
)

// Error codes of the seller context
const (
	CodeDuplicateSeller         = "DUPLICATE_SELLER"
	CodeDirectoryLookupNotFound = "DIRECTORY_LOOKUP_NOT_FOUND"
	CodeInactiveBranch          = "INACTIVE_BRANCH"
)

var (
	// ErrDuplicateSeller is returned when the document, email or tax id is already registered
	ErrDuplicateSeller = shared.NewDomainError(CodeDuplicateSeller, "Seller is already registered")
	// ErrEmployeeNotFound is returned when the HR directory has no employee for a document
	ErrEmployeeNotFound = shared.NewDomainError(CodeDirectoryLookupNotFound, "Employee not found in HR directory")
	// ErrSellerNotFound is returned when a seller id does not exist
	ErrSellerNotFound = shared.NewDomainError("NOT_FOUND", "Seller not found")
	// ErrBranchNotFound is returned when a branch id does not exist
	ErrBranchNotFound = shared.NewDomainError("NOT_FOUND", "Branch not found")
)

// NewDuplicateSellerError reports which unique attribute collided
func NewDuplicateSellerError(field, value string) *shared.DomainError {
	return shared.NewDomainError(CodeDuplicateSeller,
		fmt.Sprintf("A seller with %s %s is already registered", field, value))
}

// NewEmployeeNotFoundError reports the document that the directory does not know
func NewEmployeeNotFoundError(dni string) *shared.DomainError {
	return shared.NewDomainError(CodeDirectoryLookupNotFound,
		fmt.Sprintf("Employee with DNI %s not found in HR directory", dni))
}
