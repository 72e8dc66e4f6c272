package errors

import "fmt"

// ErrorCode represents a Loom error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrNameAlreadyExists   ErrorCode = "NAME_ALREADY_EXISTS"  // 409
	ErrResetInProgress     ErrorCode = "RESET_IN_PROGRESS"    // 409
	ErrEmptySummary        ErrorCode = "EMPTY_SUMMARY"        // 422
	ErrCancelled           ErrorCode = "CANCELLED"            // 499
	ErrInternal            ErrorCode = "INTERNAL"             // 500
	ErrDefaultsUnavailable ErrorCode = "DEFAULTS_UNAVAILABLE" // 503
)

// LoomError represents a structured error with code, status, and details.
type LoomError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *LoomError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAmbiguousAddressing creates a 400 error for when both ID and name are provided.
func NewAmbiguousAddressing() *LoomError {
	return &LoomError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and name; use one addressing mode",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LoomError {
	return &LoomError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a category cannot be found.
func NewNotFound(identifier string) *LoomError {
	return &LoomError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("category not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewHistoryNotFound creates a 404 error for when a history entry cannot be found.
func NewHistoryNotFound(id string) *LoomError {
	return &LoomError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("history entry not found: %s", id),
		Details: map[string]any{"identifier": id},
	}
}

// NewNameAlreadyExists creates a 409 error for category name collisions.
func NewNameAlreadyExists(name string) *LoomError {
	return &LoomError{
		Code:    ErrNameAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("category with name %q already exists", name),
		Details: map[string]any{"name": name},
	}
}

// NewResetInProgress creates a 409 error when a reset is already running.
func NewResetInProgress() *LoomError {
	return &LoomError{
		Code:    ErrResetInProgress,
		Status:  409,
		Message: "a reset is already in progress",
	}
}

// NewEmptySummary creates a 422 error when a snapshot of an empty summary is requested.
func NewEmptySummary() *LoomError {
	return &LoomError{
		Code:    ErrEmptySummary,
		Status:  422,
		Message: "nothing to save: summary is empty",
	}
}

// NewCancelled creates a 499 error when an operation is cancelled via context.
func NewCancelled(operation string) *LoomError {
	return &LoomError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", operation),
		Details: map[string]any{"operation": operation},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LoomError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LoomError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// NewDefaultsUnavailable creates a 503 error when default category
// definitions cannot be loaded.
func NewDefaultsUnavailable(err error) *LoomError {
	msg := "default categories unavailable"
	if err != nil {
		msg = fmt.Sprintf("default categories unavailable: %v", err)
	}
	return &LoomError{
		Code:    ErrDefaultsUnavailable,
		Status:  503,
		Message: msg,
	}
}

// Is checks if an error is a LoomError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LoomError); ok {
		return lErr.Code == code
	}
	return false
}
