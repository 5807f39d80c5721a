// Package errors provides standardized domain errors with codes for the CineLog API.
//
// Usage:
//
//	// In services - return typed errors
//	if apiKey == "" {
//	    return errors.Configuration("TMDB API key is not set")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrRemoteCall) {
//	    // surface as 502
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound      Code = "NOT_FOUND"
	CodeValidation    Code = "VALIDATION"
	CodeConfiguration Code = "CONFIGURATION"
	CodeRemoteCall    Code = "REMOTE_CALL"
	CodeEmbedding     Code = "EMBEDDING_UNAVAILABLE"
	CodeInternal      Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConfiguration:
		return http.StatusInternalServerError
	case CodeRemoteCall:
		return http.StatusBadGateway
	case CodeEmbedding:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound      = &Error{Code: CodeNotFound, Message: "not found"}
	ErrValidation    = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConfiguration = &Error{Code: CodeConfiguration, Message: "configuration error"}
	ErrRemoteCall    = &Error{Code: CodeRemoteCall, Message: "remote call failed"}
	ErrEmbedding     = &Error{Code: CodeEmbedding, Message: "embedding unavailable"}
	ErrInternal      = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Configuration creates a configuration error. These surface before any
// network call is attempted (e.g., missing TMDB credential).
func Configuration(msg string) *Error {
	return &Error{Code: CodeConfiguration, Message: msg}
}

// RemoteCall creates a remote call error. Callers must be able to tell
// "nothing found" apart from "could not ask", so remote failures are never
// converted to empty result sets.
func RemoteCall(msg string) *Error {
	return &Error{Code: CodeRemoteCall, Message: msg}
}

// RemoteCallf creates a remote call error with formatted message.
func RemoteCallf(format string, args ...any) *Error {
	return &Error{Code: CodeRemoteCall, Message: fmt.Sprintf(format, args...)}
}

// Embedding creates an embedding unavailable error. Fatal for the operation
// in progress; silently swallowing it would return stale or empty results.
func Embedding(msg string) *Error {
	return &Error{Code: CodeEmbedding, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
