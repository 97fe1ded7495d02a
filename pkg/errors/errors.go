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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Runner errors
	ErrDirectiveExec  ErrorCode = "DIRECTIVE_EXEC"
	ErrDependencyExec ErrorCode = "DEPENDENCY_EXEC"
	ErrChdir          ErrorCode = "CHDIR"

	// Recipe errors
	ErrRecipeNotFound ErrorCode = "RECIPE_NOT_FOUND"
	ErrRecipeArgs     ErrorCode = "RECIPE_ARGS"
	ErrRecipeLoad     ErrorCode = "RECIPE_LOAD"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
)

// RigupError represents a structured error with code and details
type RigupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RigupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RigupError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RigupError) Is(target error) bool {
	var targetErr *RigupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RigupError with the given code and message
func New(code ErrorCode, message string) *RigupError {
	return &RigupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RigupError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RigupError {
	return &RigupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RigupError
func Wrap(err error, code ErrorCode, message string) *RigupError {
	if err == nil {
		return nil
	}
	return &RigupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RigupError {
	if err == nil {
		return nil
	}
	return &RigupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RigupError) WithDetail(key string, value interface{}) *RigupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RigupError
func GetErrorCode(err error) ErrorCode {
	var rigupErr *RigupError
	if errors.As(err, &rigupErr) {
		return rigupErr.Code
	}
	return ErrUnknown
}
