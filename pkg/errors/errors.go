// Package errors provides structured error types for netgraph.
//
// Errors carry a machine-readable [Code] so that the loader, the view and
// the HTTP server can classify failures without string matching:
//   - LOAD_FAILURE: a tabular resource is missing or unparseable
//   - REFERENTIAL_GAP: an edge names a node id that was not loaded
//   - DUPLICATE_NODE: two node rows share an id
//   - INVALID_*: bad user input (flags, formats, request bodies)
//   - FORBIDDEN: a request asked for something the server does not allow
//   - NOT_FOUND, UNSUPPORTED, INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateNode, "duplicate node id %q", id)
//	if errors.Is(err, errors.ErrCodeDuplicateNode) {
//	    // Handle duplicate
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLoadFailure, origErr, "fetch %s", uri)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data errors
	ErrCodeLoadFailure    Code = "LOAD_FAILURE"
	ErrCodeReferentialGap Code = "REFERENTIAL_GAP"
	ErrCodeDuplicateNode  Code = "DUPLICATE_NODE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"

	// Resource errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeForbidden   Code = "FORBIDDEN"
	ErrCodeUnsupported Code = "UNSUPPORTED"

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

// GapError describes an edge whose endpoint does not resolve to a loaded node.
type GapError struct {
	Row     int    // 1-based data row in the edge resource
	Source  string // edge source id
	Target  string // edge target id
	Missing string // the id that did not resolve
}

// Error implements the error interface.
func (e *GapError) Error() string {
	return fmt.Sprintf("edge row %d (%s -> %s): unknown node %q", e.Row, e.Source, e.Target, e.Missing)
}

// Code returns the error code for this error type.
func (e *GapError) Code() Code {
	return ErrCodeReferentialGap
}
