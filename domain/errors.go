package domain

import "fmt"

// Error types for consistent error handling across the backend.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrInsufficientBalance indicates not enough wallet balance for the operation.
type ErrInsufficientBalance struct {
	Available float64
	Required  float64
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance: available=%.2f required=%.2f", e.Available, e.Required)
}

// ErrConflict indicates a resource already exists (e.g. duplicate email).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrStorage indicates a failure in the underlying store. The store owns
// retry policy; this layer only propagates.
type ErrStorage struct {
	Op  string
	Err error
}

func (e *ErrStorage) Error() string {
	return fmt.Sprintf("storage error [%s]: %v", e.Op, e.Err)
}

func (e *ErrStorage) Unwrap() error {
	return e.Err
}
