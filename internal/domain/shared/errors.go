package shared

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Validation error codes
const (
	ErrCodeRequiredField    = "REQUIRED_FIELD"
	ErrCodeInvalidType      = "INVALID_TYPE"
	ErrCodeInvalidFormat    = "INVALID_FORMAT"
	ErrCodeInvalidRange     = "INVALID_RANGE"
	ErrCodeInvalidEnum      = "INVALID_ENUM"
	ErrCodeImmutableField   = "IMMUTABLE_FIELD"
	ErrCodeUniqueViolation  = "UNIQUE_VIOLATION"
	ErrCodeForeignKey       = "FOREIGN_KEY_VIOLATION"
	ErrCodeCrossField       = "CROSS_FIELD_RULE"
	ErrCodeStaleCoordinates = "STALE_COORDINATES"
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every field violation found in a single
// validation pass. Callers see all problems in one round trip.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field violation to the collection.
func (e *ValidationError) Add(field, code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// HasErrors reports whether any violation was collected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the collection as an error when non-empty, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, code, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, code, message)
	return v
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is the not-found domain error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUniqueViolation reports whether err is a ValidationError whose only
// violation is a uniqueness constraint on the given field. The duplicate-merge
// recovery path pattern-matches on this exact shape and nothing broader.
func IsUniqueViolation(err error, field string) bool {
	var v *ValidationError
	if !errors.As(err, &v) {
		return false
	}
	return len(v.Fields) == 1 &&
		v.Fields[0].Code == ErrCodeUniqueViolation &&
		v.Fields[0].Field == field
}
