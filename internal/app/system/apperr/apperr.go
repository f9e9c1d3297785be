// Package apperr defines the error taxonomy shared by the membership
// engines and the HTTP layer.
//
// Engines fail fast with one of four kinds; the route layer maps kinds to
// status codes. Errors without a kind are treated as internal failures and
// surface as 500s without leaking detail to the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an engine failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindForbidden
	KindBadRequest
)

// Error is a kinded engine error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a referenced entity that is absent or soft-deleted.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Msg: msg} }

// Conflict reports a duplicate activation or a full team.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Msg: msg} }

// Forbidden reports a failed eligibility or ownership check.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Msg: msg} }

// BadRequest reports a missing or malformed required field.
func BadRequest(msg string) error { return &Error{Kind: KindBadRequest, Msg: msg} }

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Status maps an error to the HTTP status code the API contract specifies:
// not-found 404, conflict 409, forbidden 403, bad-request 400, else 500.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Unkinded errors get a
// generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}
