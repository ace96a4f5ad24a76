package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the caller-facing outcomes the
// engine can produce. Only KindInternal is worth retrying; the other
// kinds are permanent for the given input.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindState
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is the typed error returned by the engine and its stores.
type Error struct {
	Kind    Kind
	Field   string // set for validation errors, empty otherwise
	Message string
	Err     error // wrapped cause, set for internal errors
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(field, message string) error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func State(message string) error {
	return &Error{Kind: KindState, Message: message}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

func Internalf(format string, args ...any) error {
	return Internal(fmt.Errorf(format, args...))
}

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to its HTTP response status: 400 for
// validation, 404 for not found, 409 for conflicts and disallowed state
// transitions, 500 for everything unexpected.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
