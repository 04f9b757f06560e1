package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"

	// Domain-specific errors
	ErrEmailTaken         = "EMAIL_TAKEN"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrDuplicateName      = "DUPLICATE_NAME"
	ErrCategoryNotFound   = "CATEGORY_NOT_FOUND"
	ErrCourseNotFound     = "COURSE_NOT_FOUND"
	ErrVideoNotFound      = "VIDEO_NOT_FOUND"
	ErrNotEnrolled        = "NOT_ENROLLED"
	ErrResetTokenInvalid  = "RESET_TOKEN_INVALID"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
