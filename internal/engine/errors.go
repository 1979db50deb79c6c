package engine

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine failures. Every code is recoverable: the
// caller re-prompts, broadens a search, or abandons the attempt.
type ErrorCode string

const (
	// CodeInvalidInput covers malformed values the caller can correct:
	// empty names, bad email format, out-of-range indexes.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidDate indicates a date not in valid DD/MM/YYYY form.
	CodeInvalidDate ErrorCode = "INVALID_DATE"

	// CodeInvalidCapacity indicates a capacity that is not positive, or one
	// that would drop below the event's current enrollment.
	CodeInvalidCapacity ErrorCode = "INVALID_CAPACITY"

	// CodeDuplicateEmail indicates a registration email already present in
	// either profile collection, compared case-insensitively.
	CodeDuplicateEmail ErrorCode = "DUPLICATE_EMAIL"

	// CodeNotFound indicates an absent event, profile, or enrollment id.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeCapacityExceeded indicates an enroll attempt on a full event.
	CodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"

	// CodeAlreadyEnrolled indicates a duplicate enroll attempt.
	CodeAlreadyEnrolled ErrorCode = "ALREADY_ENROLLED"
)

// Error is the structured failure type for all engine operations.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context for diagnostics.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a NOT_FOUND error for a kind ("event", "student",
// "coordinator", "enrollment") and the key that missed.
func NewNotFound(kind, key string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %q not found", kind, key),
		Details: map[string]string{"kind": kind, "key": key},
	}
}

func codeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

func is(err error, code ErrorCode) bool {
	c, ok := codeOf(err)
	return ok && c == code
}

// IsInvalidInput reports whether err is an INVALID_INPUT engine error.
// Uses errors.As to handle wrapped errors.
func IsInvalidInput(err error) bool { return is(err, CodeInvalidInput) }

// IsInvalidDate reports whether err is an INVALID_DATE engine error.
func IsInvalidDate(err error) bool { return is(err, CodeInvalidDate) }

// IsInvalidCapacity reports whether err is an INVALID_CAPACITY engine error.
func IsInvalidCapacity(err error) bool { return is(err, CodeInvalidCapacity) }

// IsDuplicateEmail reports whether err is a DUPLICATE_EMAIL engine error.
func IsDuplicateEmail(err error) bool { return is(err, CodeDuplicateEmail) }

// IsNotFound reports whether err is a NOT_FOUND engine error.
func IsNotFound(err error) bool { return is(err, CodeNotFound) }

// IsCapacityExceeded reports whether err is a CAPACITY_EXCEEDED engine error.
func IsCapacityExceeded(err error) bool { return is(err, CodeCapacityExceeded) }

// IsAlreadyEnrolled reports whether err is an ALREADY_ENROLLED engine error.
func IsAlreadyEnrolled(err error) bool { return is(err, CodeAlreadyEnrolled) }
