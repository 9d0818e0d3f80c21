package dto

import "net/http"

// Error codes returned in the error envelope.
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation  = "ERR_VALIDATION"
	ErrCodeBadRequest  = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"

	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeEmployeeNotFound = "ERR_EMPLOYEE_NOT_FOUND"

	ErrCodeDuplicateSeller = "ERR_DUPLICATE_SELLER"
	ErrCodeDuplicateBranch = "ERR_DUPLICATE_BRANCH"
	ErrCodeInvalidState    = "ERR_INVALID_STATE"
	ErrCodeInactiveBranch  = "ERR_INACTIVE_BRANCH"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Duplicates and business rules are client errors, not conflicts.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeEmployeeNotFound: http.StatusNotFound,

	ErrCodeDuplicateSeller: http.StatusBadRequest,
	ErrCodeDuplicateBranch: http.StatusBadRequest,
	ErrCodeInvalidState:    http.StatusBadRequest,
	ErrCodeInactiveBranch:  http.StatusBadRequest,
}

// GetHTTPStatus returns the status for a registered code, or 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorStatus is GetHTTPStatus for codes carried by a domain error:
// every field-level rule code (INVALID_DNI, MISSING_TAX_ID, ...) is a 400.
func DomainErrorStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// domainCodeMapping maps domain error codes to envelope codes.
var domainCodeMapping = map[string]string{
	"NOT_FOUND":                  ErrCodeNotFound,
	"DIRECTORY_LOOKUP_NOT_FOUND": ErrCodeEmployeeNotFound,
	"DUPLICATE_SELLER":           ErrCodeDuplicateSeller,
	"DUPLICATE_BRANCH":           ErrCodeDuplicateBranch,
	"VALIDATION_ERROR":           ErrCodeValidation,
	"INVALID_INPUT":              ErrCodeBadRequest,
	"INVALID_STATE":              ErrCodeInvalidState,
	"INACTIVE_BRANCH":            ErrCodeInactiveBranch,
}

// NormalizeErrorCode converts a domain code to its envelope code.
// Field-level rule codes pass through unchanged.
func NormalizeErrorCode(code string) string {
	if newCode, ok := domainCodeMapping[code]; ok {
		return newCode
	}
	return code
}
