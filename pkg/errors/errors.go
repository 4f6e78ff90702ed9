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

	// Rendering errors
	ErrModeResolution ErrorCode = "MODE_RESOLUTION"
	ErrInvalidMode    ErrorCode = "INVALID_MODE"
	ErrPathResolution ErrorCode = "PATH_RESOLUTION"
	ErrNoOutputPath   ErrorCode = "NO_OUTPUT_PATH"
	ErrWidget         ErrorCode = "WIDGET"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// External commands
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// DocforgeError represents a structured error with code and details
type DocforgeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DocforgeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DocforgeError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DocforgeError carrying the same code.
func (e *DocforgeError) Is(target error) bool {
	var targetErr *DocforgeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DocforgeError with the given code and message
func New(code ErrorCode, message string) *DocforgeError {
	return &DocforgeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DocforgeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DocforgeError {
	return &DocforgeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DocforgeError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DocforgeError {
	if err == nil {
		return nil
	}
	return &DocforgeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DocforgeError {
	if err == nil {
		return nil
	}
	return &DocforgeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DocforgeError) WithDetail(key string, value interface{}) *DocforgeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var docErr *DocforgeError
	if errors.As(err, &docErr) {
		return docErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DocforgeError
func GetErrorCode(err error) ErrorCode {
	var docErr *DocforgeError
	if errors.As(err, &docErr) {
		return docErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DocforgeError
func GetErrorDetails(err error) map[string]interface{} {
	var docErr *DocforgeError
	if errors.As(err, &docErr) {
		return docErr.Details
	}
	return nil
}
