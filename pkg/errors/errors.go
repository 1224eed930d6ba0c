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

	// Descriptor document errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigRead     ErrorCode = "CONFIG_READ"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite    ErrorCode = "CONFIG_WRITE"
	ErrLocked         ErrorCode = "LOCKED"

	// Tool settings errors
	ErrSettingsLoad    ErrorCode = "SETTINGS_LOAD"
	ErrSettingsInvalid ErrorCode = "SETTINGS_INVALID"

	// add-package validation
	ErrUnsupportedManager ErrorCode = "UNSUPPORTED_MANAGER"
	ErrPackageNotFound    ErrorCode = "PACKAGE_NOT_FOUND"

	// apply validation and execution
	ErrUnknownSection   ErrorCode = "UNKNOWN_SECTION"
	ErrSourceInspection ErrorCode = "SOURCE_INSPECTION"
	ErrExternalTool     ErrorCode = "EXTERNAL_TOOL"
	ErrSystemFile       ErrorCode = "SYSTEM_FILE"
)

// DesksetError represents a structured error with code and details
type DesksetError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DesksetError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DesksetError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DesksetError with the same code.
func (e *DesksetError) Is(target error) bool {
	var targetErr *DesksetError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DesksetError with the given code and message
func New(code ErrorCode, message string) *DesksetError {
	return &DesksetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DesksetError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DesksetError {
	return &DesksetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DesksetError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DesksetError {
	if err == nil {
		return nil
	}
	return &DesksetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DesksetError {
	if err == nil {
		return nil
	}
	return &DesksetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DesksetError) WithDetail(key string, value interface{}) *DesksetError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var desksetErr *DesksetError
	if errors.As(err, &desksetErr) {
		return desksetErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DesksetError
func GetErrorCode(err error) ErrorCode {
	var desksetErr *DesksetError
	if errors.As(err, &desksetErr) {
		return desksetErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DesksetError
func GetErrorDetails(err error) map[string]interface{} {
	var desksetErr *DesksetError
	if errors.As(err, &desksetErr) {
		return desksetErr.Details
	}
	return nil
}
