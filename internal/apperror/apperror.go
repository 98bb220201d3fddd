// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP handlers translate them to status
// codes at the boundary. Anything that doesn't match a sentinel below is
// treated as a store failure and becomes a generic 500.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation error")
)

// AppError carries a sentinel plus a human-readable message. errors.Is and
// errors.As both work through it via Unwrap.
type AppError struct {
	Err     error  // sentinel error
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// InvalidCredentials is returned when a username exists but the password
// doesn't match. Distinct from NotFound on purpose: the login page reports
// unknown usernames separately (see DESIGN.md on the disclosure trade-off).
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: "invalid username or password",
	}
}

// Forbidden indicates the caller lacks permission. Handlers map it to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
