package errors

import (
	"fmt"
)

// Validation failure codes reported by the tax rate table
const (
	CodeEmptyCountry   = "empty-country"
	CodeNegativeAmount = "negative-amount"
	CodeDuplicateRate  = "duplicate-rate"
	CodeInvalidStatus  = "invalid-status"
	CodeInvalidScope   = "invalid-scope"
	CodeEmptyRegion    = "empty-region"
)

// Warning codes that require caller confirmation
const (
	CodeZeroAmountRate = "zero-amount-rate"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation is returned when a tax rate change breaks a business rule.
// Scope is set for duplicate-rate failures and names the conflicting scope.
type ErrValidation struct {
	Code    string
	Message string
	Scope   string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// Warning is a non-blocking condition the caller must confirm before the
// operation goes ahead.
type Warning struct {
	Code    string
	Message string
}

func (w *Warning) Error() string {
	return w.Message
}

// ErrSync is returned when the admin API could not complete a region lookup
// or a save.
type ErrSync struct {
	Op  string
	Err error
}

func (e *ErrSync) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *ErrSync) Unwrap() error {
	return e.Err
}
