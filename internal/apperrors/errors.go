package apperrors

import "errors"

// Error kinds. Every error leaving an engine unwraps to exactly one of
// these; the transport layer maps kinds to status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInternal          = errors.New("internal error")
)

type appError struct {
	kind    error
	message string
}

func (e *appError) Error() string { return e.message }

func (e *appError) Unwrap() error { return e.kind }

func NotFound(message string) error {
	return &appError{kind: ErrNotFound, message: message}
}

func InvalidInput(message string) error {
	return &appError{kind: ErrInvalidInput, message: message}
}

func Conflict(message string) error {
	return &appError{kind: ErrConflict, message: message}
}

func PermissionDenied(message string) error {
	return &appError{kind: ErrPermissionDenied, message: message}
}

func InvalidCredential(message string) error {
	return &appError{kind: ErrInvalidCredential, message: message}
}

// Internal wraps an unclassifiable failure. The cause stays attached for
// logging but the message shown outward is generic.
func Internal(err error) error {
	return &internalError{cause: err}
}

type internalError struct {
	cause error
}

func (e *internalError) Error() string { return "internal error: " + e.cause.Error() }

func (e *internalError) Unwrap() error { return ErrInternal }
