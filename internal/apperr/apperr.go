// ABOUTME: Normalized error taxonomy for classified request failures
// ABOUTME: Every failed call resolves to one Error carrying a kind and message

package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of a request.
type Kind string

// Failure kinds, one per classifier outcome.
const (
	KindValidation Kind = "validation" // 400-class, message-bearing, non-fatal
	KindAuth       Kind = "auth"       // 401, fatal to the session
	KindPermission Kind = "permission" // 403, local, no state change
	KindNotFound   Kind = "not_found"  // 404
	KindServer     Kind = "server"     // 5xx
	KindNetwork    Kind = "network"    // timeout or no transport response
)

// Error is the normalized failure shape returned by the request pipeline.
// Callers switch on Kind; Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New creates a normalized error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation creates a validation error carrying a server-supplied message.
func Validation(message string) *Error { return New(KindValidation, message) }

// Auth creates a session-fatal authentication error.
func Auth(message string) *Error { return New(KindAuth, message) }

// Permission creates a permission-denied error.
func Permission(message string) *Error { return New(KindPermission, message) }

// NotFound creates a resource-not-found error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Server creates a server-side failure error.
func Server(message string) *Error { return New(KindServer, message) }

// Network creates a transport failure error.
func Network(message string) *Error { return New(KindNetwork, message) }

// KindOf extracts the failure kind from err, unwrapping as needed.
// Returns the empty Kind when err is not a normalized error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a normalized error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
