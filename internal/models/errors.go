package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate record.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError creates a validation error.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError signals a missing or rejected credential, or access to a
// resource the caller does not own.
type AuthorizationError struct {
	Message   string
	Forbidden bool
}

func (e *AuthorizationError) Error() string { return e.Message }

// DataAccessError signals that storage was unreachable or a query failed.
// It is never used for "no rows".
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// ComputationError signals that a distance could not be computed for a record.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string { return e.Reason }

// ErrorResponse is the JSON body of a failed request. Message and Stack are
// only set for server errors; Stack is omitted in production.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}
