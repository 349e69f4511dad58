package matchably

import (
	"errors"
	"fmt"

	"github.com/me/matchably/pkg/model"
)

// Error types for common failure scenarios.
var (
	// ErrNotAuthenticated indicates no token is configured.
	ErrNotAuthenticated = errors.New("not authenticated: no token configured")

	// ErrTokenRejected indicates the server refused the stored token.
	ErrTokenRejected = errors.New("token rejected by server")
)

// HTTPError represents a transport-level error (non-2xx response with
// no parseable envelope).
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsRetryable returns true if the HTTP error is retryable.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// Error wraps a Matchably API error with operation context.
type Error struct {
	// Op is the operation that failed.
	Op string

	// Code is the structured error code from the envelope, if any.
	Code model.ErrorCode

	// Message is the error message.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with operation context.
func WrapError(op string, err error) *Error {
	return &Error{Op: op, Err: err, Message: err.Error()}
}

// fromEnvelope converts an error envelope to an Error.
func fromEnvelope(op string, env *Envelope) *Error {
	return &Error{Op: op, Code: env.Code, Message: env.Message}
}

// IsAuthError returns true if the error is an authentication or
// authorization failure (bad credentials, expired or rejected token).
func IsAuthError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == model.ErrUnauthorized || e.Code == model.ErrForbidden
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 401 || httpErr.StatusCode == 403
	}
	return errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrTokenRejected)
}

// IsNotFoundError returns true if the error indicates a missing
// resource.
func IsNotFoundError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == model.ErrNotFound
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 404
	}
	return false
}

// IsBusinessError returns true if the server rejected the request on a
// business rule (seats full, monthly limit, duplicate application).
func IsBusinessError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.IsBusinessCode()
	}
	return false
}

// IsValidationError returns true if the server rejected the request
// payload.
func IsValidationError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == model.ErrValidation
	}
	return false
}

// IsRetryable returns true if the error is likely transient and the
// request should be retried.
func IsRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsRetryable()
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Code != "" {
			return e.Code == model.ErrInternal
		}
		return IsRetryable(e.Err)
	}
	return false
}
