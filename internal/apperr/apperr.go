// Package apperr defines the typed errors returned by the registration services.
// Handlers translate a Code into an HTTP status; everything else is Internal.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers.
type Code string

const (
	CodeUnauthorized          Code = "unauthorized"
	CodeNotFound              Code = "not_found"
	CodeWindowClosed          Code = "window_closed"
	CodeCapacityExceeded      Code = "capacity_exceeded"
	CodeInvalidPosition       Code = "invalid_position"
	CodeCannotReorder         Code = "cannot_reorder"
	CodeMissingRequiredAnswer Code = "missing_required_answer"
	CodeConflict              Code = "conflict"
	CodeBadRequest            Code = "bad_request"
	CodeInternal              Code = "internal"
)

// Error is a domain error carrying a Code and a client-safe message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so callers can write
// errors.Is(err, apperr.ErrCapacityExceeded).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New returns an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Internal wraps a storage or unexpected failure.
func Internal(err error) *Error {
	return Wrap(err, CodeInternal, "internal error")
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the client-safe message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Sentinels usable with errors.Is.
var (
	ErrUnauthorized          = New(CodeUnauthorized, "unauthorized")
	ErrNotFound              = New(CodeNotFound, "not found")
	ErrWindowClosed          = New(CodeWindowClosed, "registrations are not open")
	ErrCapacityExceeded      = New(CodeCapacityExceeded, "registrations and waiting list are already full")
	ErrInvalidPosition       = New(CodeInvalidPosition, "invalid waiting list position")
	ErrCannotReorder         = New(CodeCannotReorder, "cannot move to arbitrary position of waiting list")
	ErrMissingRequiredAnswer = New(CodeMissingRequiredAnswer, "missing answer for required question")
	ErrAlreadyRegistered     = New(CodeConflict, "user is already registered for this event")
)
