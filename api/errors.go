// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-atomic.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrPoolClosed      = fmt.Errorf("worker pool is closed")
	ErrNotSupported    = fmt.Errorf("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeNotSupported
	ErrCodeClosed
	// ErrCodeMisuse marks a violated caller obligation: double release,
	// use after release, double unlock, self-relock under owner check.
	ErrCodeMisuse
	// ErrCodeWorkerPanic marks a panic recovered from a harness worker.
	ErrCodeWorkerPanic
	ErrCodeInternal
)

var codeNames = map[ErrorCode]string{
	ErrCodeOK:              "ok",
	ErrCodeInvalidArgument: "invalid_argument",
	ErrCodeNotSupported:    "not_supported",
	ErrCodeClosed:          "closed",
	ErrCodeMisuse:          "misuse",
	ErrCodeWorkerPanic:     "worker_panic",
	ErrCodeInternal:        "internal",
}

// String returns the short name of the code.
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, api.NewError(api.ErrCodeMisuse, "")) matches any misuse.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Misuse builds the panic value raised when a caller obligation is broken.
func Misuse(op, message string) *Error {
	return NewError(ErrCodeMisuse, message).WithContext("op", op)
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err is not
// a structured error. A nil err yields ErrCodeOK.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ErrCodeInternal
}
