// Package errors provides standardized domain errors with codes for the Bookmarket client.
//
// Usage:
//
//	// In the engine - return typed errors
//	if !session.CanManageCatalog(scopeID) {
//	    return errors.Forbidden("only the bookstore owner can manage the catalog")
//	}
//
//	// At the operation boundary - check with errors.Is
//	if errors.Is(err, errors.ErrFetch) {
//	    // render the empty state instead of crashing the screen
//	}
package errors

import (
	"errors"
	"fmt"
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

// Error codes used throughout the client.
const (
	// CodeFetch marks a failed list or detail read. Screens degrade to an
	// empty / not-found state instead of crashing.
	CodeFetch Code = "FETCH"
	// CodeMutation marks a failed create/update/delete/restore/asset
	// operation. The cache is left untouched and the remote message is
	// surfaced to the user.
	CodeMutation   Code = "MUTATION"
	CodeNotFound   Code = "NOT_FOUND"
	CodeForbidden  Code = "FORBIDDEN"
	CodeValidation Code = "VALIDATION"
	CodeInternal   Code = "INTERNAL"
)

// Error is a domain error with a code, message, and optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
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

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrFetch      = &Error{Code: CodeFetch, Message: "fetch failed"}
	ErrMutation   = &Error{Code: CodeMutation, Message: "mutation failed"}
	ErrNotFound   = &Error{Code: CodeNotFound, Message: "not found"}
	ErrForbidden  = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInternal   = &Error{Code: CodeInternal, Message: "internal error"}
)

// Fetch creates a fetch error.
func Fetch(msg string) *Error {
	return &Error{Code: CodeFetch, Message: msg}
}

// Fetchf creates a fetch error with formatted message.
func Fetchf(format string, args ...any) *Error {
	return &Error{Code: CodeFetch, Message: fmt.Sprintf(format, args...)}
}

// Mutation creates a mutation error.
func Mutation(msg string) *Error {
	return &Error{Code: CodeMutation, Message: msg}
}

// Mutationf creates a mutation error with formatted message.
func Mutationf(format string, args ...any) *Error {
	return &Error{Code: CodeMutation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
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
