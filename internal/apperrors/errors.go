package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidState indicates that the resource is in a state that does not allow the operation,
// e.g. paying an invoice that is already paid.
var ErrInvalidState = errors.New("invalid state")

// AppError carries an HTTP status code and a caller-facing message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound with a descriptive message.
func NewNotFoundError(message string) error {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationFailedError returns an error matching ErrValidation.
func NewValidationFailedError(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError returns an error matching ErrDuplicate.
func NewConflictError(message string) error {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewForbiddenError returns an error matching ErrForbidden.
func NewForbiddenError(message string) error {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// NewUnauthorizedError returns an error matching ErrUnauthorized.
func NewUnauthorizedError(message string) error {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

// NewInvalidStateError returns an error matching ErrInvalidState.
func NewInvalidStateError(message string) error {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrInvalidState}
}

// PublicMessage returns the caller-facing message of err when it is an AppError carrying a
// known sentinel, and fallback otherwise.
func PublicMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" && appErr.Code < http.StatusInternalServerError {
		return appErr.Message
	}
	return fallback
}
