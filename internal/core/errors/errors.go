package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations
var (
	// Identity
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("action forbidden")

	// Registry validation
	ErrNameRequired         = errors.New("name is required")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrBranchRequired       = errors.New("branch is required")
	ErrEmployeeRequired     = errors.New("employee is required")
	ErrContractRequired     = errors.New("contract is required")
	ErrRegistrationRequired = errors.New("registration number is required")
	ErrInvalidDocument      = errors.New("document must be a valid CNPJ")

	// Non-conformance validation
	ErrUnknownSeverity          = errors.New("unknown severity value")
	ErrInvalidStatus            = errors.New("invalid non-conformance status")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrAttributionRequired      = errors.New("record must reference an employee or a client")
	ErrAttributionConflict      = errors.New("record cannot reference both an employee and a client")
	ErrOccurrenceDateRequired   = errors.New("occurrence date is required")
	ErrDescriptionRequired      = errors.New("description is required")
	ErrCorrectiveActionRequired = errors.New("corrective action is required")

	// Ranking
	ErrInvalidPeriod = errors.New("period must be a valid calendar month")

	// Overtime / extra services / measurement
	ErrInvalidHours      = errors.New("hours must be between 0 and 24")
	ErrInvalidMultiplier = errors.New("multiplier must be 50 or 100")
	ErrInvalidRate       = errors.New("rate cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrNothingToBill     = errors.New("measurement has no unbilled records to close")

	// Equipment loans
	ErrEquipmentRequired = errors.New("equipment description is required")
	ErrDueBeforeLoan     = errors.New("due date cannot precede the loan date")
	ErrReturnBeforeLoan  = errors.New("return date cannot precede the loan date")
	ErrAlreadyReturned   = errors.New("equipment was already returned")

	// Not found
	ErrBranchNotFound         = errors.New("branch not found")
	ErrClientNotFound         = errors.New("client not found")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrContractNotFound       = errors.New("contract not found")
	ErrNonConformanceNotFound = errors.New("non-conformance not found")
	ErrOvertimeNotFound       = errors.New("overtime record not found")
	ErrLoanNotFound           = errors.New("equipment loan not found")

	// Generic
	ErrNotFound    = errors.New("resource not found")
	ErrInternal    = errors.New("internal server error")
	ErrBadRequest  = errors.New("bad request")
	ErrConflict    = errors.New("resource conflict")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		Code:       "UNAUTHORIZED",
		StatusCode: 401,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Err:        ErrForbidden,
		Message:    message,
		Code:       "FORBIDDEN",
		StatusCode: 403,
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "NOT_FOUND",
		StatusCode: 404,
	}
}

func NewConflictError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "CONFLICT",
		StatusCode: 409,
	}
}

func NewValidationError(err error, message string, details map[string]interface{}) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		StatusCode: 422,
		Details:    details,
	}
}

// NewDataIntegrityError flags stored data that violates the domain's closed
// contracts, e.g. a severity value outside the known set.
func NewDataIntegrityError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "DATA_INTEGRITY",
		StatusCode: 422,
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    "Too many requests. Please try again later.",
		Code:       "RATE_LIMITED",
		StatusCode: 429,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
