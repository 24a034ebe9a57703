package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure for HTTP mapping purposes.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error carries a failure classification and a caller-safe message.
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

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// BadRequest builds a 400-classified error with a caller-safe message.
func BadRequest(message string) *Error {
	return newError(KindBadRequest, message)
}

// MissingFields builds a 400-classified error listing the absent required fields.
func MissingFields(fields ...string) *Error {
	return newError(KindBadRequest, "Missing required fields: "+strings.Join(fields, ", "))
}

// InvalidID builds a 400-classified error for a malformed resource identifier.
// param names the offending id parameter, e.g. "item".
func InvalidID(param string) *Error {
	return newError(KindBadRequest, fmt.Sprintf("Invalid %s id", param))
}

// Unauthenticated builds a 401-classified error.
func Unauthenticated(message string) *Error {
	return newError(KindUnauthenticated, message)
}

// Forbidden builds a 403-classified error with the fixed message.
func Forbidden() *Error {
	return newError(KindForbidden, "Forbidden")
}

// NotFound builds a 404-classified error.
func NotFound(message string) *Error {
	return newError(KindNotFound, message)
}

// Duplicate builds a 409-classified error naming the conflicting unique fields.
func Duplicate(fields ...string) *Error {
	return newError(KindConflict, "Duplicate value for field(s): "+strings.Join(fields, ", "))
}

// Internal wraps an unclassified failure. The wrapped error is kept for
// logging; Normalize never exposes it to the caller.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "An error has occurred on the server.", Err: err}
}

// Normalize maps any failure to a stable HTTP status and caller-safe message.
// Unclassified errors collapse to a generic 500; internal detail is never
// echoed to the caller.
func Normalize(err error) (int, string) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return http.StatusInternalServerError, "An error has occurred on the server."
	}

	switch appErr.Kind {
	case KindBadRequest:
		return http.StatusBadRequest, appErr.Message
	case KindUnauthenticated:
		return http.StatusUnauthorized, appErr.Message
	case KindForbidden:
		return http.StatusForbidden, appErr.Message
	case KindNotFound:
		return http.StatusNotFound, appErr.Message
	case KindConflict:
		return http.StatusConflict, appErr.Message
	default:
		return http.StatusInternalServerError, "An error has occurred on the server."
	}
}
