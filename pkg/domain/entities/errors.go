package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrDuplicateItem   = errors.New("duplicate item")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ValidationError reports malformed or missing input for a named field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) succeed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError with a formatted reason
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateItemError reports a listing that already exists for a supplier.
// Callers should switch to the update path.
type DuplicateItemError struct {
	SupplierID SupplierID
	ItemName   string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item %q already listed by supplier %s", e.ItemName, e.SupplierID)
}

func (e *DuplicateItemError) Is(target error) bool {
	return target == ErrDuplicateItem
}

// IndexOutOfRangeError reports a stale client-side cart index
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for cart of %d lines", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
