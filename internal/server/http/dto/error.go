package dto

import domainErrors "github.com/solemart/solemart/internal/domain/errors"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string                    `json:"message"`
	Errors  []domainErrors.FieldError `json:"errors,omitempty"`
}
