// Package errors provides structured error types for funcstructs.
//
// Every failure the enumeration core can report carries a machine-readable
// [Code], so the CLI, the HTTP API and library callers can react to the
// category of a failure without matching on message text:
//   - INVALID_*: bad input, detected before any enumeration state exists
//   - PRECONDITION_VIOLATED: a successor was requested from a terminal or
//     exhausted object (a bug in the calling driver, not bad input)
//   - NOT_FOUND, NETWORK_ERROR, INTERNAL_ERROR: driver-side failures
//
// All core failures are deterministic and unrecoverable at the point of
// detection. Nothing in this module retries them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSize, "tree needs at least one node, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidSize) {
//	    // handle bad size
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "read cache entry %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Enumeration input errors
	ErrCodeInvalidSize      Code = "INVALID_SIZE"
	ErrCodeInvalidArguments Code = "INVALID_ARGUMENTS"

	// Successor requested past the end of an enumeration
	ErrCodePreconditionViolated Code = "PRECONDITION_VIOLATED"

	// Driver input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidKind   Code = "INVALID_KIND"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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

// IsInput reports whether err was caused by bad caller input, as opposed to
// a driver bug or an infrastructure failure.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidSize, ErrCodeInvalidArguments, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeInvalidKind, ErrCodeInvalidConfig:
		return true
	}
	return false
}
