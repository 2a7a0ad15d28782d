// Package apperr defines the error taxonomy surfaced by the API. Every
// business failure carries a machine-readable code so handlers can map it to
// an HTTP status without inspecting message text.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound            Code = "NOT_FOUND"
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeInvalidState        Code = "INVALID_STATE"
	CodeCapacityExceeded    Code = "CAPACITY_EXCEEDED"
	CodeForbidden           Code = "FORBIDDEN"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeAddressNotFound     Code = "ADDRESS_NOT_FOUND"
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	CodeConflict            Code = "CONFLICT"
	CodeInternal            Code = "INTERNAL"
)

type Error struct {
	Code    Code
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

// Is matches two apperr values by code, so errors.Is(err, apperr.NotFound("x"))
// style comparisons work in tests.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(message string) *Error            { return New(CodeNotFound, message) }
func InvalidArgument(message string) *Error     { return New(CodeInvalidArgument, message) }
func InvalidState(message string) *Error        { return New(CodeInvalidState, message) }
func CapacityExceeded(message string) *Error    { return New(CodeCapacityExceeded, message) }
func Forbidden(message string) *Error           { return New(CodeForbidden, message) }
func Unauthorized(message string) *Error        { return New(CodeUnauthorized, message) }
func AddressNotFound(message string) *Error     { return New(CodeAddressNotFound, message) }
func UpstreamUnavailable(message string) *Error { return New(CodeUpstreamUnavailable, message) }
func Conflict(message string) *Error            { return New(CodeConflict, message) }
func Internal(message string) *Error            { return New(CodeInternal, message) }

// CodeOf extracts the code from an error chain. Unknown errors map to
// CodeInternal so storage failures are never silently reinterpreted.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
