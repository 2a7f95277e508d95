package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
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

// WithDetail attaches a structured detail to the error so callers can
// report specifics (e.g. requested vs. remaining quantity) without
// parsing the message.
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Error codes used by the return settlement engine. Each failure carries
// one of these specific codes; the engine never reports a generic failure
// when a concrete cause is known.
const (
	CodeAggregateNotFound      = "AGGREGATE_NOT_FOUND"
	CodeItemNotFound           = "ITEM_NOT_FOUND"
	CodeExceedsReturnable      = "EXCEEDS_RETURNABLE"
	CodeEmptySelection         = "EMPTY_SELECTION"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeConflictRetryExhausted = "CONFLICT_RETRY_EXHAUSTED"
	CodeOptimisticLockFailed   = "OPTIMISTIC_LOCK_FAILED"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
)

// IsCode reports whether err is (or wraps) a DomainError with the given code.
func IsCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
