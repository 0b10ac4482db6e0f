// internal/domain/apperr/apperr.go

// Package apperr defines the error taxonomy shared by stores, the approval
// engine, and the HTTP layer.
//
// Stores and services return *Error values; handlers map the Kind to an
// HTTP status. Transient errors are retryable; the rest are terminal for
// the request that produced them.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need to branch on it.
type Kind int

const (
	// KindValidation covers bad or duplicate client input. No state change
	// occurred.
	KindValidation Kind = iota
	// KindNotFound means the referenced record does not exist.
	KindNotFound
	// KindInvalidState means the record exists but the requested transition
	// is not allowed (e.g. deciding an already-decided transaction).
	KindInvalidState
	// KindTransient covers infrastructure failures (database, network,
	// timeout). Safe to retry.
	KindTransient
)

// Error carries a Kind alongside the message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidState returns a KindInvalidState error.
func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

// Transient wraps an infrastructure failure.
func Transient(msg string, err error) *Error {
	return &Error{Kind: KindTransient, Msg: msg, Err: err}
}

// ErrProvisionIncomplete marks a partial success: the transaction was
// approved and persisted, but the provisioning cascade did not finish.
// The decision is not rolled back; retrying the cascade is idempotent.
var ErrProvisionIncomplete = errors.New("provisioning incomplete")

func is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsInvalidState reports whether err is an invalid-state error.
func IsInvalidState(err error) bool { return is(err, KindInvalidState) }

// IsTransient reports whether err is a retryable infrastructure error.
func IsTransient(err error) bool { return is(err, KindTransient) }
