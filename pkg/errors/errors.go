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

	// Registration errors
	ErrInvalidTarget ErrorCode = "INVALID_TARGET"

	// Scenario errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// SignalsError represents a structured error with code and details
type SignalsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SignalsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SignalsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SignalsError) Is(target error) bool {
	var targetErr *SignalsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SignalsError with the given code and message
func New(code ErrorCode, message string) *SignalsError {
	return &SignalsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SignalsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SignalsError {
	return &SignalsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SignalsError
func Wrap(err error, code ErrorCode, message string) *SignalsError {
	if err == nil {
		return nil
	}
	return &SignalsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SignalsError {
	if err == nil {
		return nil
	}
	return &SignalsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SignalsError) WithDetail(key string, value interface{}) *SignalsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var serr *SignalsError
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SignalsError
func GetErrorCode(err error) ErrorCode {
	var serr *SignalsError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SignalsError
func GetErrorDetails(err error) map[string]interface{} {
	var serr *SignalsError
	if errors.As(err, &serr) {
		return serr.Details
	}
	return nil
}
