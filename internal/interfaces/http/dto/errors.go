package dto

import (
	"net/http"
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to suffix matching and finally to 400.
var errorCodeHTTPStatus = map[string]int{
	// Aggregates and referenced resources that do not exist
	shared.CodeAggregateNotFound: http.StatusNotFound,
	"NOT_FOUND":                  http.StatusNotFound,

	// Invalid return selections
	shared.CodeItemNotFound:      http.StatusUnprocessableEntity,
	shared.CodeExceedsReturnable: http.StatusUnprocessableEntity,
	shared.CodeEmptySelection:    http.StatusUnprocessableEntity,

	// Stock and concurrency conflicts
	shared.CodeInsufficientStock:      http.StatusConflict,
	shared.CodeConflictRetryExhausted: http.StatusConflict,
	shared.CodeOptimisticLockFailed:   http.StatusConflict,
	"CONCURRENCY_CONFLICT":            http.StatusConflict,
	"ALREADY_EXISTS":                  http.StatusConflict,

	// HTTP-layer codes
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
