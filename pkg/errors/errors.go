// Package errors provides structured error types for the imgrid application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, TUI, and HTTP surfaces
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the failure taxonomy of the compositor:
//   - INVALID_* / CONFLICTING_*: configuration failures, reported once and fatal
//   - DECODE_FAILED: per-image load failures, logged and skipped
//   - ENCODE_FAILED: output write failures
//   - INTERNAL_ERROR: invariant violations that indicate a layout bug
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidCols, "cols %d not in range %d - %d", c, min, max)
//	if errors.Is(err, errors.ErrCodeInvalidCols) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecodeFailed, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidCols     Code = "INVALID_COLS"
	ErrCodeInvalidLayout   Code = "INVALID_LAYOUT"
	ErrCodeInvalidBorder   Code = "INVALID_BORDER"
	ErrCodeInvalidCrop     Code = "INVALID_CROP"
	ErrCodeInvalidOutput   Code = "INVALID_OUTPUT"
	ErrCodeConflictingSize Code = "CONFLICTING_SIZE"
	ErrCodeTooManyImages   Code = "TOO_MANY_IMAGES"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Image I/O errors
	ErrCodeDecodeFailed Code = "DECODE_FAILED"
	ErrCodeEncodeFailed Code = "ENCODE_FAILED"

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

// IsConfig reports whether err belongs to the configuration error
// category, which the CLI reports once and exits with code 1.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidGeometry, ErrCodeInvalidCols, ErrCodeInvalidLayout,
		ErrCodeInvalidBorder, ErrCodeInvalidCrop, ErrCodeInvalidOutput,
		ErrCodeConflictingSize, ErrCodeTooManyImages, ErrCodeInvalidConfig:
		return true
	}
	return false
}
