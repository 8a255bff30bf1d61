// Package errors provides structured error types for the getalts client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration or request validation failures
//   - NETWORK_ERROR/TIMEOUT: Transport-level failures
//   - API_ERROR/RATE_LIMITED: Errors reported by the remote service
//   - DECODE_ERROR: Response shape mismatches
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRequest, "unknown service: %s", svc)
//	if errors.Is(err, errors.ErrCodeInvalidRequest) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", op)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration and request validation errors
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidRequest Code = "INVALID_REQUEST"
	ErrCodeInvalidToken   Code = "INVALID_TOKEN"

	// Transport errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Remote service errors
	ErrCodeAPI         Code = "API_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Response decoding errors
	ErrCodeDecode Code = "DECODE_ERROR"

	// Activation flow errors
	ErrCodeNoCode Code = "NO_CODE_RECEIVED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by every error type in this package.
type coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for a coded error with a matching
// code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string when no coded error is in the chain.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// APIError is an error response returned by the remote service.
// RemoteCode carries the service's own error identifier verbatim
// (e.g. "rate_limited", "bad_token", "no_numbers").
type APIError struct {
	RemoteCode string // Error code reported by the API
	Message    string // Error message reported by the API (may be empty)
	Operation  string // API operation that failed
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %s: %s (%s)", e.RemoteCode, e.Message, e.Operation)
	}
	return fmt.Sprintf("api error %s (%s)", e.RemoteCode, e.Operation)
}

// Code returns the error code for this error type.
func (e *APIError) Code() Code {
	return ErrCodeAPI
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	ok := errors.As(err, &e)
	return e, ok
}

// DecodeError is returned when a response body cannot be parsed into the
// expected shape. Raw holds the offending payload for diagnosis.
type DecodeError struct {
	Operation string // API operation whose response failed to decode
	Raw       []byte // Raw response payload
	Cause     error  // Underlying unmarshal error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying unmarshal error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Code returns the error code for this error type.
func (e *DecodeError) Code() Code {
	return ErrCodeDecode
}
