// Package errors provides structured error types for repeatmap.
//
// Every failure the diagram core can raise carries a machine-readable [Code],
// so callers can branch on the kind of defect without string matching:
//
//   - UNKNOWN_TRACK: an operation referenced a track that was never registered
//   - DUPLICATE_TRACK: two track descriptors resolved to the same identifier
//   - UNSUPPORTED_REPEAT_TYPE: a repeat descriptor matched no recognized shape
//   - REPEAT_DECOMPOSITION: alignment rows do not cover the repeat's residues
//
// The core errors are raised synchronously at the point of misuse and are
// never retried. Outer layers (logo client, importers, CLI) add network and
// input codes on top.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownTrack, "unknown track %q", id)
//	if errors.Is(err, errors.ErrCodeUnknownTrack) {
//	    // Handle missing track
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Diagram core errors
	ErrCodeUnknownTrack          Code = "UNKNOWN_TRACK"
	ErrCodeDuplicateTrack        Code = "DUPLICATE_TRACK"
	ErrCodeUnsupportedRepeatType Code = "UNSUPPORTED_REPEAT_TYPE"
	ErrCodeRepeatDecomposition   Code = "REPEAT_DECOMPOSITION"
	ErrCodeInvalidInterval       Code = "INVALID_INTERVAL"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeLogoService Code = "LOGO_SERVICE"

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
// Only the outermost *Error is consulted, so a wrapped cause with a different
// code does not match.
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

// IsCore reports whether err is one of the diagram core's input defects.
// These are never transient and must not be retried.
func IsCore(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownTrack, ErrCodeDuplicateTrack, ErrCodeUnsupportedRepeatType,
		ErrCodeRepeatDecomposition, ErrCodeInvalidInterval:
		return true
	}
	return false
}
