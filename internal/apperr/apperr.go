// Package apperr carries the failure taxonomy shared by all services. Every
// operation returns one of these kinds; handlers map them to HTTP statuses
// and nothing propagates to the client as an unhandled fault.
package apperr

import "errors"

type Kind int

const (
	// KindInternal is the fallback for unexpected collaborator failures.
	KindInternal Kind = iota
	// KindNotFound means the referenced entity is absent.
	KindNotFound
	// KindGone means the entity existed but was soft-deleted.
	KindGone
	// KindInvalidState means the operation is not valid for the entity's
	// current status (e.g. posting to a closed chat).
	KindInvalidState
	// KindForbidden means the actor lacks the required role or ownership.
	KindForbidden
	// KindValidation means required input is missing or malformed.
	KindValidation
	// KindUnauthorized means the caller is not authenticated.
	KindUnauthorized
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func Gone(msg string) error         { return &Error{Kind: KindGone, Message: msg} }
func InvalidState(msg string) error { return &Error{Kind: KindInvalidState, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }
func Validation(msg string) error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }

// Internal wraps an unexpected failure behind a stable caller-facing message.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal for plain
// errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
