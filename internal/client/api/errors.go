package api

import "errors"

// Error kinds. Every failure returned by Client wraps exactly one of these,
// so callers can branch with errors.Is while still getting a user-facing
// message from Error().
var (
	ErrUnauthorized  = errors.New("authentication required")
	ErrValidation    = errors.New("validation failed")
	ErrServer        = errors.New("server error")
	ErrNetwork       = errors.New("network error")
	ErrTimeout       = errors.New("request timeout")
	ErrRequestFailed = errors.New("request failed")
)

// Error is the typed error produced by the HTTP client. Message is suitable
// for direct display to the user.
type Error struct {
	Kind    error
	Message string
	Status  int // HTTP status, 0 when no response was received
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string, status int) *Error {
	return &Error{Kind: kind, Message: message, Status: status}
}
