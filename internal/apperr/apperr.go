package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the HTTP layer can pick a status code.
type Kind int

const (
	// Validation is malformed or missing input.
	Validation Kind = iota
	// Conflict is an invariant violation, e.g. the unit is already leased.
	Conflict
	// InvalidState is an operation not valid from the current state.
	InvalidState
	// Permission is an actor lacking authorization.
	Permission
	// NotFound is a referenced record that does not exist.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case InvalidState:
		return "invalid_state"
	case Permission:
		return "permission"
	case NotFound:
		return "not_found"
	}
	return "unknown"
}

// Error is a classified domain error. All core operations return these for
// expected failures; anything else is treated as an internal error.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// New creates a classified error with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an underlying error with a kind and message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

// KindOf returns the kind of err, or ok=false when err is not a domain error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
