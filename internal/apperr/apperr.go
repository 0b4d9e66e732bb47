// Package apperr defines the error-kind taxonomy used at the core/boundary
// seam: the core returns a Kind-tagged error, and the HTTP layer maps Kind
// to a status code without needing to parse message strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for boundary mapping.
type Kind int

const (
	// Internal is the catch-all kind: surfaced as an opaque failure.
	Internal Kind = iota
	// InvalidArgument covers malformed or out-of-range caller input.
	InvalidArgument
	// NotFound means the requested id has no record in the store.
	NotFound
	// EmbedderFailure means an external embedding call failed.
	EmbedderFailure
	// CorruptRecord means stored bytes failed to decode.
	CorruptRecord
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case EmbedderFailure:
		return "embedder_failure"
	case CorruptRecord:
		return "corrupt_record"
	default:
		return "internal"
	}
}

// Error is a Kind-tagged error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind from err, defaulting to Internal when err is
// not (or does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
