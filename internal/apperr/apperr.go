// Package apperr defines the classified error model shared by the HTTP
// middleware gates, the service layer, and the error classification chain.
//
// An apperr.Error carries a closed Kind, a client-safe message, and an
// optional wrapped cause. The Kind alone determines the HTTP status, so the
// mapping lives in exactly one place and every component consults it instead
// of re-implementing status decisions.
//
// One deliberate oddity is preserved from the API contract: ownership
// mismatch (KindForbidden) is reported to clients as 401, the same status as
// missing or invalid authentication. Only resource absence is distinguished,
// as 404, and the existence check always runs before the ownership check.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind enumerates the closed set of error classes the API can produce.
type Kind uint8

const (
	// KindInternal is the fallback class for anything unclassified.
	KindInternal Kind = iota

	// KindBadRequest covers malformed identifiers, invalid query
	// parameters, invalid input to the store, and duplicate-key conflicts.
	KindBadRequest

	// KindUnauthenticated covers missing, malformed, expired, or otherwise
	// unverifiable bearer tokens.
	KindUnauthenticated

	// KindForbidden covers a verified identity that does not own the
	// target resource.
	KindForbidden

	// KindNotFound covers absent resources and foreign-key violations.
	KindNotFound
)

// String returns a short name for the kind, used in logs.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its HTTP status code. KindForbidden maps to 401
// rather than 403; both "no token" and "wrong owner" surface identically.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthenticated, KindForbidden:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error: a kind, a message that is safe to send to
// clients, and an optional internal cause that is only ever logged.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface. The internal cause, when present,
// is included so server-side logs stay diagnosable.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the internal cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for this error's kind.
func (e *Error) Status() int { return e.Kind.HTTPStatus() }

// New constructs a classified error with the given kind and client message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs a classified error that records err as its internal cause.
// The cause is never sent to clients.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// BadRequest returns a KindBadRequest error with the given client message.
func BadRequest(msg string) *Error { return New(KindBadRequest, msg) }

// Unauthenticated returns a KindUnauthenticated error with the given client message.
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }

// Forbidden returns a KindForbidden error with the given client message.
// It is reported to clients with status 401.
func Forbidden(msg string) *Error { return New(KindForbidden, msg) }

// NotFound returns a KindNotFound error with the given client message.
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// Internal wraps an unexpected failure. The client only ever sees a generic
// message; err is retained for logging.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "Internal Server Error", Err: err}
}
