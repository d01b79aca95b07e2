package schedule

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Domain kinds are not retryable without
// caller-supplied changes; KindStore failures are safe to retry.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindValidation     Kind = "validation"
	KindSlotConflict   Kind = "slot_conflict"
	KindInvalidState   Kind = "invalid_state"
	KindStore          Kind = "store"
)

// Error is a kinded operation error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a domain error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapStore wraps an underlying persistence failure as a store error.
func WrapStore(message string, err error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}

// KindOf extracts the kind of err; unclassified errors report KindStore.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
