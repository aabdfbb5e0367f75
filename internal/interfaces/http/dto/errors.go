package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the API. Domain errors carry these codes
// directly; the map below decides the HTTP status per code.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	ErrCodeInternal:      http.StatusInternalServerError,

	"NO_ITEMS":             http.StatusBadRequest,
	"DISALLOWED_FILE_TYPE": http.StatusBadRequest,
	"FILE_TOO_LARGE":       http.StatusRequestEntityTooLarge,
	"TRANSACTION_FAILED":   http.StatusInternalServerError,
	"RENDER_FAILED":        http.StatusInternalServerError,
	"SEND_FAILED":          http.StatusInternalServerError,
	"STORAGE_FAILED":       http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for a domain error code.
// INVALID_* codes are validation failures; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
