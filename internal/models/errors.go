package models

import (
	"errors"
	"fmt"
)

// The ledger rejects bad input synchronously and never persists partial
// state. Three error kinds cover every failure the core can surface;
// the HTTP layer maps them to 400, 404 and 409.

// ValidationError reports invalid input: a non-positive amount, an empty
// participant set, a payer or participant who is not a group member.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to an unknown group, expense, split,
// settlement or user. Inconsistent references discovered at read time are
// also surfaced this way rather than producing a wrong number.
type NotFoundError struct {
	Kind string // "group", "expense", "split", "settlement", "user"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given entity kind and ID.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError reports an operation that is a no-op because the entity is
// already in the requested state, e.g. settling an already-settled split.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// NewConflictError builds a ConflictError with a formatted reason.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
