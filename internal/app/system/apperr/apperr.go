// Package apperr defines the error taxonomy shared by all features.
//
// Handlers classify every failure as one of five kinds before any write:
// invalid input, not found, precondition failed, conflict, or store failure.
// The httpjson package maps the kind to an HTTP status; store failures are
// logged with detail but surfaced to callers as a generic server error.
package apperr

import (
	"errors"
	"fmt"
)

// Kind partitions failures by how the caller should react.
type Kind int

const (
	// InvalidInput: malformed scan token, missing field, bad timestamp.
	InvalidInput Kind = iota
	// NotFound: machine/operator/planning/work-order id does not resolve.
	NotFound
	// PreconditionFailed: a business-rule gate is not met.
	PreconditionFailed
	// Conflict: a duplicate or contradictory state was detected.
	Conflict
	// StoreFailure: the persistence layer failed; never silently swallowed.
	StoreFailure
)

// Error carries a kind and a human-readable message safe to return to the
// caller. For StoreFailure the underlying cause is wrapped for logs but the
// message stays generic.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Invalid builds an InvalidInput error.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: InvalidInput, Message: fmt.Sprintf(format, args...)}
}

// InvalidMsg builds an InvalidInput error from an already-formed message,
// such as a validation result. The message is never treated as a format
// string, so a literal percent sign survives intact.
func InvalidMsg(msg string) *Error {
	return &Error{Kind: InvalidInput, Message: msg}
}

// NotFoundf builds a NotFound error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

// Precondition builds a PreconditionFailed error.
func Precondition(format string, args ...any) *Error {
	return &Error{Kind: PreconditionFailed, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a Conflict error.
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

// Store wraps a persistence error. The message shown to callers is generic;
// cause is preserved for logging.
func Store(cause error) *Error {
	return &Error{Kind: StoreFailure, Message: "a database error occurred", cause: cause}
}

// KindOf extracts the kind from err, defaulting to StoreFailure for
// unclassified errors so nothing escapes the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return StoreFailure
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "a database error occurred"
}
