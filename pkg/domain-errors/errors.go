// Package domainerrors defines the engine's error taxonomy. Every failure a
// caller can act on carries a machine-readable Code; the HTTP layer translates
// codes into statuses and JSON envelopes without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error kind. Values are wire-stable: they appear
// verbatim in the "error" field of HTTP error responses.
type Code string

const (
	// Generic codes.
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_failed"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal_error"

	// Admission-specific codes.
	CodeQuotaExceeded     Code = "quota_exceeded"
	CodeSeatBurned        Code = "seat_burned"
	CodeSeatAssigned      Code = "seat_assigned"
	CodeCandidateAssigned Code = "candidate_assigned"
	CodeInvalidScore      Code = "invalid_score"
)

// Error pairs a Code with human-readable detail and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and detail.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with formatted detail.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and detail to an underlying error. The cause stays
// reachable through errors.Is/As for sentinel checks.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		de = nil
	}
	return false
}

// CodeOf extracts the outermost code from err, defaulting to CodeInternal so
// unexpected failures never leak detail to callers.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the human-readable detail of the outermost domain error,
// or an empty string when err is not a domain error.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
