package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInternal              = "INTERNAL_ERROR"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeNoHearts              = "NO_HEARTS"
	ErrCodeInsufficientRubies    = "INSUFFICIENT_RUBIES"
	ErrCodeClassifierUnavailable = "CLASSIFIER_UNAVAILABLE"
	ErrCodeInvalidImage          = "INVALID_IMAGE"
	ErrCodeInconsistentState     = "INCONSISTENT_STATE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string         // Error code (e.g., "NOT_FOUND", "NO_HEARTS")
	Message string         // Human-readable error message
	Status  int            // HTTP status code
	Err     error          // Wrapped underlying error (optional)
	Details map[string]any // Extra payload surfaced to the client (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches extra client-visible payload to the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewUnauthorizedError creates a new UNAUTHORIZED error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// NewForbiddenError creates a new FORBIDDEN error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeForbidden,
		Message: message,
		Status:  403,
	}
}

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewNoHeartsError signals that the account has no attempt budget left.
// The current economy state travels in Details so the client can react.
func NewNoHeartsError(hearts, rubies int) *AppError {
	return &AppError{
		Code:    ErrCodeNoHearts,
		Message: "no hearts remaining",
		Status:  409,
		Details: map[string]any{"hearts": hearts, "rubies": rubies},
	}
}

// NewInsufficientRubiesError signals a purchase the account cannot afford.
func NewInsufficientRubiesError(hearts, rubies, cost int) *AppError {
	return &AppError{
		Code:    ErrCodeInsufficientRubies,
		Message: "not enough rubies",
		Status:  409,
		Details: map[string]any{"hearts": hearts, "rubies": rubies, "cost": cost},
	}
}

// NewClassifierUnavailableError signals that the verification could not be
// judged. Retryable; no state was mutated.
func NewClassifierUnavailableError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeClassifierUnavailable,
		Message: "sign classifier unavailable",
		Status:  503,
		Err:     err,
	}
}

// NewInvalidImageError creates a new INVALID_IMAGE error
func NewInvalidImageError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidImage,
		Message: fmt.Sprintf("invalid image payload: %s", reason),
		Status:  400,
	}
}

// NewInconsistentStateError reports a broken invariant detected at runtime.
// Never silently corrected; always logged at the boundary.
func NewInconsistentStateError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInconsistentState,
		Message: message,
		Status:  500,
	}
}
