package shared

import (
	"errors"
	"fmt"
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// ValidationError reports an invalid field value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrInvariantViolation marks a broken simulation invariant.
// It is fatal for the running month: callers abort the transaction.
var ErrInvariantViolation = errors.New("invariant violation")

// InvariantViolationError describes which entity broke which invariant
type InvariantViolationError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violation on %s %d: %s", e.Entity, e.ID, e.Reason)
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}

func NewInvariantViolation(entity string, id uint, reason string) *InvariantViolationError {
	return &InvariantViolationError{Entity: entity, ID: id, Reason: reason}
}
