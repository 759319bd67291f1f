package ecode

import (
	"errors"
	"fmt"
)

// Error is a client-visible failure carrying a business code.
type Error struct {
	Code    int
	Message string
	Fields  map[string]string // per-field validation messages
	Err     error             // underlying cause, never sent to clients
}

// New creates an error with the given code and message.
// An empty message falls back to Text(code).
func New(code int, message string) *Error {
	if message == "" {
		message = Text(code)
	}
	return &Error{Code: code, Message: message}
}

// Wrap creates an error with the given code, message and cause.
func Wrap(code int, message string, err error) *Error {
	e := New(code, message)
	e.Err = err
	return e
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

// Status returns the HTTP status for the error's code.
func (e *Error) Status() int {
	return ToHTTPStatus(e.Code)
}

// WithFields attaches per-field messages.
func (e *Error) WithFields(fields map[string]string) *Error {
	e.Fields = fields
	return e
}

// ValidationError reports a missing or malformed field.
func ValidationError(message string) *Error {
	return New(ParamErr, message)
}

// AuthError reports bad credentials or an invalid token.
func AuthError(message string) *Error {
	return New(NoLogin, message)
}

// AccessDeniedError reports an authenticated caller acting on a document they do not own.
func AccessDeniedError(message string) *Error {
	return New(AccessDenied, message)
}

// NotFoundError reports an id that resolves to nothing.
func NotFoundError(message string) *Error {
	return New(NotFound, message)
}

// ConflictError reports a uniqueness violation.
func ConflictError(message string) *Error {
	return New(Conflict, message)
}

// InternalError wraps an unexpected fault.
func InternalError(message string, err error) *Error {
	return Wrap(ServerErr, message, err)
}

// FromError extracts an *Error from err's chain.
func FromError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, ServerErr for foreign errors and OK for nil.
func CodeOf(err error) int {
	if err == nil {
		return OK
	}
	if e, ok := FromError(err); ok {
		return e.Code
	}
	return ServerErr
}
