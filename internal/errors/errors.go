// Package errors provides typed errors shared by the services and surfaced in the TUI status line.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of an error.
type ErrorType string

const (
	// TypeValidation indicates invalid user input.
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates a missing player, club or round.
	TypeNotFound ErrorType = "not_found"
	// TypeConflict indicates a duplicate or otherwise conflicting record.
	TypeConflict ErrorType = "conflict"
	// TypeInternal indicates a storage or programming failure.
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage is the text shown to the player; internal causes stay in the log.
func (e *Error) UserMessage() string {
	if e.Type == TypeInternal {
		return "something went wrong: " + e.Message
	}
	return e.Message
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message, Context: make(map[string]any)}
}

// NotFoundError creates a new not-found error.
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message, Context: make(map[string]any)}
}

// ConflictError creates a new conflict error.
func ConflictError(message string) *Error {
	return &Error{Type: TypeConflict, Message: message, Context: make(map[string]any)}
}

// InternalError creates a new internal error wrapping cause.
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause, Context: make(map[string]any)}
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// AsStructuredError converts any error into a structured Error.
// Errors that are not already structured are wrapped as internal errors.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}
	return InternalError("unexpected failure", err)
}

func hasType(err error, t ErrorType) bool {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.Type == t
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return hasType(err, TypeValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return hasType(err, TypeNotFound) }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return hasType(err, TypeConflict) }

// IsInternal reports whether err is an internal error.
func IsInternal(err error) bool { return hasType(err, TypeInternal) }
