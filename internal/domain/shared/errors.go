package shared

import (
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field names the offending request field, when there is one
	Field string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels work with errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across bounded contexts
const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeConflict            = "CONFLICT"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeCompensationFailed  = "COMPENSATION_FAILED"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidation          = NewDomainError(CodeValidation, "Validation failed")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrConflict            = NewDomainError(CodeConflict, "Resource conflicts with existing data")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Not enough quantity on hand")
)

// NewValidationError reports a missing/malformed field or an unresolved reference.
// Validation errors are always raised before any write.
func NewValidationError(field string, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewInvalidReferenceError reports a foreign key that does not resolve
func NewInvalidReferenceError(field string, value any) *DomainError {
	return NewValidationError(field, fmt.Sprintf("Invalid %s: %v does not exist", field, value))
}

// NewNotFoundError reports a missing target of a read/update/delete
func NewNotFoundError(kind string) *DomainError {
	return NewDomainError(CodeNotFound, kind+" not found")
}

// NewConflictError reports a uniqueness or referential conflict
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// CompensationFailureError is raised when undoing a partially applied mutation
// failed. Stored state may be inconsistent and needs manual reconciliation.
type CompensationFailureError struct {
	Cause           error
	CompensationErr error
}

// NewCompensationFailureError wraps the original failure and the failed undo
func NewCompensationFailureError(cause, compensationErr error) *CompensationFailureError {
	return &CompensationFailureError{
		Cause:           cause,
		CompensationErr: compensationErr,
	}
}

// Error implements the error interface
func (e *CompensationFailureError) Error() string {
	return fmt.Sprintf("compensation failed after %v: %v", e.Cause, e.CompensationErr)
}

// Unwrap exposes both the original failure and the compensation error
func (e *CompensationFailureError) Unwrap() []error {
	return []error{e.Cause, e.CompensationErr}
}
