package model

import "fmt"

// ErrorCode represents a structured API error code. Business failures
// travel as codes, not free-text messages, so callers never have to
// substring-match "seats full" out of a toast string.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrConflict     ErrorCode = "CONFLICT"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"

	// Business error codes shared with the backend contract.
	ErrSeatsFull      ErrorCode = "SEATS_FULL"
	ErrLimitReached   ErrorCode = "LIMIT_REACHED"
	ErrAlreadyApplied ErrorCode = "ALREADY_APPLIED"
)

// APIError is a structured error carried in response envelopes.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// IsBusinessCode reports whether the code represents a business rule
// rejection rather than a transport, auth, or server fault.
func (c ErrorCode) IsBusinessCode() bool {
	switch c {
	case ErrSeatsFull, ErrLimitReached, ErrAlreadyApplied:
		return true
	}
	return false
}
