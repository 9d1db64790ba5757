package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrProductUnavailable  = errors.New("product is not available")
	ErrSizeUnavailable     = errors.New("size not available")
	ErrColorUnavailable    = errors.New("color not available")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidOrderState   = errors.New("order cannot be changed at this stage")
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrNotRefundable       = errors.New("order cannot be refunded")
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field validation failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field failure and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidation extracts a ValidationError from err when present.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
