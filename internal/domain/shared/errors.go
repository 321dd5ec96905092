package shared

import "errors"

// Error codes shared by every bounded context
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeNotFound         = "NOT_FOUND"
	CodeReferentialBlock = "REFERENTIAL_BLOCK"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnknownDevice    = "UNKNOWN_DEVICE"
	CodeUnknownProduct   = "UNKNOWN_PRODUCT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field names the offending input field when the error is field-attributed
	Field string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// A target with a field only matches errors attributed to that field.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Field == "" || e.Field == t.Field)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewFieldError creates a domain error attributed to a single input field
func NewFieldError(code, field, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// NewValidationError creates a VALIDATION_ERROR for the given field
func NewValidationError(field, message string) *DomainError {
	return NewFieldError(CodeValidation, field, message)
}

// NewNotFoundError creates a NOT_FOUND error with a specific message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewReferentialBlockError creates a REFERENTIAL_BLOCK error
func NewReferentialBlockError(message string) *DomainError {
	return NewDomainError(CodeReferentialBlock, message)
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists    = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrReferentialBlock = NewDomainError(CodeReferentialBlock, "Resource is referenced by other records")
)

// HasCode reports whether err is a DomainError carrying the given code
func HasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
