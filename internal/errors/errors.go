// Package errors provides domain-specific error types for keepalived.
//
// This package defines structured errors with error codes, making it easier
// to handle and test different error conditions consistently across the
// application.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConfig indicates a configuration loading or validation error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeParse indicates a tokenizer or directive parsing error.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeResolve indicates a hostname resolution error.
	ErrCodeResolve ErrorCode = "RESOLVE_ERROR"

	// ErrCodeNetwork indicates a network inspection error (netlink, iptables).
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"

	// ErrCodeProcess indicates an error applying process-control settings.
	ErrCodeProcess ErrorCode = "PROCESS_ERROR"

	// ErrCodeAPI indicates an error in the status API server.
	ErrCodeAPI ErrorCode = "API_ERROR"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewParseError creates a new parse error.
func NewParseError(message string, cause error) *Error {
	return Wrap(ErrCodeParse, message, cause)
}

// NewResolveError creates a new hostname resolution error.
func NewResolveError(message string, cause error) *Error {
	return Wrap(ErrCodeResolve, message, cause)
}

// NewNetworkError creates a new network inspection error.
func NewNetworkError(message string, cause error) *Error {
	return Wrap(ErrCodeNetwork, message, cause)
}

// NewProcessError creates a new process-control error.
func NewProcessError(message string, cause error) *Error {
	return Wrap(ErrCodeProcess, message, cause)
}

// NewAPIError creates a new status API error.
func NewAPIError(message string, cause error) *Error {
	return Wrap(ErrCodeAPI, message, cause)
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCodeInternal, message, cause)
}
