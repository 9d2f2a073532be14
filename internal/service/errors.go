package service

import (
	"errors"
	"fmt"

	"github.com/brandonbohn/adebackend/internal/repository"
)

// Error codes returned to API clients
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeServer       = "SERVER_ERROR"
)

// Error a classified service failure. Field is set for validation errors.
type Error struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationError(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

func NotFoundError(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func UnauthorizedError(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

// ServerError wraps a storage or unexpected failure.
func ServerError(message string, err error) *Error {
	return &Error{Code: CodeServer, Message: message, Err: err}
}

// AsError classifies err. repository.ErrNotFound becomes NOT_FOUND and
// anything unclassified becomes SERVER_ERROR.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &Error{Code: CodeNotFound, Message: "Resource not found", Err: err}
	}
	return &Error{Code: CodeServer, Message: "Internal server error", Err: err}
}

// notFoundOr maps ErrNotFound to a NOT_FOUND with msg and wraps anything else.
func notFoundOr(err error, msg, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundError(msg)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
