package dto

import (
	"net/http"

	"github.com/futurevend/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodePayloadTooLarge = "ERR_PAYLOAD_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists    = "ERR_ALREADY_EXISTS"
	ErrCodeReferentialBlock = "ERR_REFERENTIAL_BLOCK"
)

// Ingestion error codes
const (
	ErrCodeUnknownDevice  = "ERR_UNKNOWN_DEVICE"
	ErrCodeUnknownProduct = "ERR_UNKNOWN_PRODUCT"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeReferentialBlock: http.StatusConflict,

	// The request was well formed but names hardware or products nobody registered
	ErrCodeUnknownDevice:  http.StatusUnprocessableEntity,
	ErrCodeUnknownProduct: http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodeMapping maps domain error codes to API error codes
var domainCodeMapping = map[string]string{
	shared.CodeValidation:       ErrCodeValidation,
	shared.CodeAlreadyExists:    ErrCodeAlreadyExists,
	shared.CodeNotFound:         ErrCodeNotFound,
	shared.CodeReferentialBlock: ErrCodeReferentialBlock,
	shared.CodeInternal:         ErrCodeInternal,
	shared.CodeUnknownDevice:    ErrCodeUnknownDevice,
	shared.CodeUnknownProduct:   ErrCodeUnknownProduct,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are reported as internal errors so no unmapped code leaks out.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainCodeMapping[code]; ok {
		return apiCode
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
