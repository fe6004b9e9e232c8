package command

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories a handler can
// produce. Every kind has exactly one user-facing reply mapping in
// replyForError; anything outside the set gets the generic retry
// message.
type ErrorKind string

const (
	ErrValidation          ErrorKind = "validation"
	ErrNotFound            ErrorKind = "not_found"
	ErrStoreUnavailable    ErrorKind = "store_unavailable"
	ErrFallbackUnavailable ErrorKind = "fallback_unavailable"
)

// Error is a handler failure carrying its kind and, for validation
// errors, the specific corrective message to show the user.
type Error struct {
	Kind    ErrorKind
	Message string // user-facing; optional for non-validation kinds
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command: %s: %v", e.Kind, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("command: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("command: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// validationErr builds a Validation error with the corrective text
// shown directly to the user.
func validationErr(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func notFoundErr(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// storeErr wraps a persistence failure as StoreUnavailable.
func storeErr(err error) *Error {
	return &Error{Kind: ErrStoreUnavailable, Err: err}
}

// replyForError is the single mapping from error kind to reply text.
// Validation and NotFound errors carry their own specific message;
// everything else collapses to a fixed string per kind.
func replyForError(err error) string {
	var cerr *Error
	if !errors.As(err, &cerr) {
		return msgStoreUnavailable
	}
	switch cerr.Kind {
	case ErrValidation, ErrNotFound:
		if cerr.Message != "" {
			return cerr.Message
		}
		return msgStoreUnavailable
	case ErrFallbackUnavailable:
		return msgFallbackUnavailable
	case ErrStoreUnavailable:
		return msgStoreUnavailable
	default:
		return msgStoreUnavailable
	}
}
