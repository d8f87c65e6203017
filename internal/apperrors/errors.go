package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource changed under the caller (lost compare-and-swap).
var ErrConflict = errors.New("resource was modified concurrently")

// ErrInternal is returned when the failure must not leak details to the caller.
var ErrInternal = errors.New("internal error")

// ErrBackend wraps opaque failures from the data stores.
var ErrBackend = errors.New("backend unavailable")

// Reconciliation workflow errors.
var (
	ErrBlockedByPendingUsers = errors.New("reconciliation blocked: user cortes pending validation")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrMissingMotive         = errors.New("a motive is required")
)

// ErrInvalidCancellationCode is the parent of every code rejection below.
var ErrInvalidCancellationCode = errors.New("invalid cancellation code")

var (
	ErrCodeNotFound         = fmt.Errorf("%w: code not found", ErrInvalidCancellationCode)
	ErrCodeExpired          = fmt.Errorf("%w: code expired", ErrInvalidCancellationCode)
	ErrCodeAlreadyUsed      = fmt.Errorf("%w: code already used", ErrInvalidCancellationCode)
	ErrCodeMismatchedTarget = fmt.Errorf("%w: code issued for a different record", ErrInvalidCancellationCode)
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. A nil err is replaced with ErrInternal so the
// result still matches errors.Is(err, ErrInternal) for 5xx codes.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= 500 {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}
