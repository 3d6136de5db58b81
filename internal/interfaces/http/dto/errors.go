package dto

import (
	"errors"
	"net/http"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// API error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_FAILED"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// FromError translates an application error into its HTTP status and response
// body. Validation errors come back as 400 with every field violation listed;
// unexpected errors come back opaque, their detail belongs in the log, not on
// the wire.
func FromError(err error) (int, Response) {
	var v *shared.ValidationError
	if errors.As(err, &v) {
		fields := make([]FieldError, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = FieldError{Field: f.Field, Code: f.Code, Message: f.Message}
		}
		return http.StatusBadRequest, NewValidationErrorResponse(fields)
	}
	if shared.IsNotFound(err) {
		return http.StatusNotFound, NewErrorResponse(ErrCodeNotFound, "resource not found")
	}
	var d *shared.DomainError
	if errors.As(err, &d) {
		return http.StatusConflict, NewErrorResponse(d.Code, d.Message)
	}
	return http.StatusInternalServerError, NewErrorResponse(ErrCodeInternal, "internal server error")
}
