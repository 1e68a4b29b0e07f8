// Package errors provides structured error types for rbgen.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI and the HTTP API can react to it without string matching:
//
//   - INVALID_*: a request was rejected before any pixel work started
//   - RESOURCE_BOUND: a request exceeds the canvas or lattice limits
//   - *_NOT_FOUND: a referenced file or theme does not exist
//   - INTERNAL_ERROR: an unexpected failure (codec, cache backend)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidMode, "unknown mode: %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//	    // reject the request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Request validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidMode      Code = "INVALID_MODE"
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	ErrCodeInvalidTheme     Code = "INVALID_THEME"
	ErrCodeInvalidColor     Code = "INVALID_COLOR"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource limits
	ErrCodeResourceBound Code = "RESOURCE_BOUND"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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

// IsRequestError reports whether err was caused by the caller's input
// rather than by the environment. Request errors are never worth retrying.
func IsRequestError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidMode, ErrCodeInvalidParameter,
		ErrCodeInvalidTheme, ErrCodeInvalidColor, ErrCodeInvalidPath,
		ErrCodeResourceBound:
		return true
	}
	return false
}
