package domain

import "errors"

// Error kinds. Services attach a user-facing message to one of these via the
// constructors below; the HTTP layer maps kinds to status codes with errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func BadRequest(msg string) error   { return &Error{kind: ErrBadRequest, message: msg} }
func Unauthorized(msg string) error { return &Error{kind: ErrUnauthorized, message: msg} }
func Forbidden(msg string) error    { return &Error{kind: ErrForbidden, message: msg} }
func NotFound(msg string) error     { return &Error{kind: ErrNotFound, message: msg} }
func Conflict(msg string) error     { return &Error{kind: ErrConflict, message: msg} }
func Internal(msg string) error     { return &Error{kind: ErrInternal, message: msg} }
