// Package apperr defines the error taxonomy shared by every route.
// Services fail fast with a specific kind; controllers translate the kind
// to an HTTP status in exactly one place. Anything that is not an *Error
// is treated as internal and surfaces as a generic 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation       Kind = iota // missing or malformed input
	KindConflict                     // duplicate unique key
	KindAuthentication               // bad credentials
	KindNotFound                     // no matching row
	KindMethodNotAllowed             // wrong verb or unrecognized action
	KindInternal                     // anything unanticipated, including store failures
)

type Error struct {
	Kind    Kind
	Message string // human-readable, safe to return to clients
	Err     error  // underlying cause, never shown in production
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

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func MethodNotAllowed(message string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Status maps an error to its HTTP status code. The reference system folds
// duplicate-key conflicts into 400 rather than 409, so ConflictError maps
// to 400 here as well.
func Status(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error. Internal errors
// collapse to a generic message; their detail travels separately and only
// outside production.
func Message(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return "Internal server error"
	}
	return appErr.Message
}
