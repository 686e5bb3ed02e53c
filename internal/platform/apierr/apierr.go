package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the error type services hand back to the HTTP layer. Message is
// safe to show to clients; Details carries dependency error text or the raw
// offending payload for data-shape failures.
type Error struct {
	Status  int
	Code    string
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// BadRequest is a client input error.
func BadRequest(code, msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: msg, Err: errors.New(msg)}
}

func NotFound(code, msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: msg, Err: errors.New(msg)}
}

func Forbidden(code, msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: code, Message: msg, Err: errors.New(msg)}
}

// Upstream wraps a dependency failure. The dependency's error text becomes
// Details.
func Upstream(code, msg string, err error) *Error {
	e := &Error{Status: http.StatusInternalServerError, Code: code, Message: msg, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// From returns err as an *Error, treating anything unrecognised as an
// internal failure.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Upstream("internal_error", "Internal server error", err)
}
