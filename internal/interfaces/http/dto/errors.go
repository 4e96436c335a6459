package dto

import "net/http"

// API error codes returned in error responses
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field or file is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
	// ErrCodeInvalidFileType is used when an upload is not an accepted document type
	ErrCodeInvalidFileType = "ERR_INVALID_FILE_TYPE"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an order cannot move to the requested status
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,
	ErrCodeInvalidFileType:    http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps codes raised by the order and invoice
// contexts to API error codes
var DomainErrorCodeMapping = map[string]string{
	"INVALID_UUID":         ErrCodeValidationFormat,
	"INVALID_ORDER_STATUS": ErrCodeValidationFormat,
	"INVALID_FILE_PATH":    ErrCodeValidationFormat,
	"INVALID_PRICE":        ErrCodeValidationRange,
	"INVALID_QUANTITY":     ErrCodeValidationRange,
	"INVALID_SENT_AT":      ErrCodeValidationRange,
	"EMPTY_FILE":           ErrCodeValidationRequired,
	"INVALID_FILE_TYPE":    ErrCodeInvalidFileType,
	"INVALID_INPUT":        ErrCodeInvalidInput,

	"NOT_FOUND":         ErrCodeNotFound,
	"ORDER_NOT_FOUND":   ErrCodeNotFound,
	"INVOICE_NOT_FOUND": ErrCodeNotFound,

	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"ORDER_ALREADY_EXISTS":    ErrCodeAlreadyExists,
	"INVOICE_ALREADY_EXISTS":  ErrCodeAlreadyExists,
	"CONCURRENT_MODIFICATION": ErrCodeConcurrencyConflict,

	"INVALID_STATE": ErrCodeInvalidState,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Domain codes without an entry are client errors and become ERR_INVALID_INPUT.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInvalidInput
}
