package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Specification errors
	ErrValidation     ErrorCode = "VALIDATION"
	ErrOutOfRange     ErrorCode = "OUT_OF_RANGE"
	ErrNoPlaceholders ErrorCode = "NO_PLACEHOLDERS"
	ErrSpecParse      ErrorCode = "SPEC_PARSE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Rendering errors
	ErrRender ErrorCode = "RENDER"

	// Source errors
	ErrClone ErrorCode = "CLONE"

	// FileSystem errors
	ErrIO         ErrorCode = "IO"
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// CreatorlyError represents a structured error with code and details
type CreatorlyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CreatorlyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CreatorlyError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CreatorlyError) Is(target error) bool {
	var targetErr *CreatorlyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CreatorlyError with the given code and message
func New(code ErrorCode, message string) *CreatorlyError {
	return &CreatorlyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CreatorlyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CreatorlyError {
	return &CreatorlyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CreatorlyError
func Wrap(err error, code ErrorCode, message string) *CreatorlyError {
	if err == nil {
		return nil
	}
	return &CreatorlyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CreatorlyError {
	if err == nil {
		return nil
	}
	return &CreatorlyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CreatorlyError) WithDetail(key string, value interface{}) *CreatorlyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithAdvice attaches a hint telling the user how to fix the problem
func (e *CreatorlyError) WithAdvice(advice string) *CreatorlyError {
	return e.WithDetail("advice", advice)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var creatorlyErr *CreatorlyError
	if errors.As(err, &creatorlyErr) {
		return creatorlyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CreatorlyError
func GetErrorCode(err error) ErrorCode {
	var creatorlyErr *CreatorlyError
	if errors.As(err, &creatorlyErr) {
		return creatorlyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CreatorlyError
func GetErrorDetails(err error) map[string]interface{} {
	var creatorlyErr *CreatorlyError
	if errors.As(err, &creatorlyErr) {
		return creatorlyErr.Details
	}
	return nil
}

// GetAdvice returns the advice attached to an error, if any
func GetAdvice(err error) string {
	details := GetErrorDetails(err)
	if details == nil {
		return ""
	}
	advice, _ := details["advice"].(string)
	return advice
}
