// Package rerr provides the error taxonomy shared by every simulation
// package. Errors carry a stable Code plus a chain of context strings so
// callers can decide, without string matching, whether a failure is
// recoverable (bad input) or fatal to the current episode.
package rerr

import (
	"errors"
	"fmt"
	"strings"
)

// Code categorizes why an operation failed.
type Code string

const (
	// CodeIndex marks a coordinate that falls outside the field.
	CodeIndex Code = "index"
	// CodeInvalidInput marks a key or action code the keymap doesn't recognize.
	CodeInvalidInput Code = "invalid_input"
	// CodeIgnoredInput marks an input that is well-formed but meaningless
	// in the current UI state (e.g. a movement key while a modal is open).
	CodeIgnoredInput Code = "ignored_input"
	// CodeIncompleteInput marks a multi-key sequence still being composed.
	CodeIncompleteInput Code = "incomplete_input"
	// CodeInvalidSetting marks a configuration value outside its documented range.
	CodeInvalidSetting Code = "invalid_setting"
	// CodeJSON marks a JSON marshal/unmarshal failure.
	CodeJSON Code = "json"
	// CodeInvalidConversion marks a failed type or unit conversion.
	CodeInvalidConversion Code = "invalid_conversion"
	// CodeMaybeBug marks a violated internal invariant. Should never fire
	// in a released build; every branch that can raise it must be covered
	// by a test.
	CodeMaybeBug Code = "maybe_bug"
	// CodeUnimplemented marks a deliberately stubbed-out code path.
	CodeUnimplemented Code = "unimplemented"
)

// recoverable lists the codes a caller may swallow and keep reading input,
// per spec: InvalidInput, IgnoredInput, and IncompleteInput are the only
// recoverable kinds.
var recoverable = map[Code]bool{
	CodeInvalidInput:    true,
	CodeIgnoredInput:    true,
	CodeIncompleteInput: true,
}

// Error is the error type returned by every package in this module.
type Error struct {
	Code    Code
	Message string
	Cause   error
	chain   []string
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and a context string to an existing error, chaining
// any context already attached to it.
func Wrap(code Code, context string, cause error) *Error {
	e := &Error{Code: code, Message: context, Cause: cause}
	var prev *Error
	if errors.As(cause, &prev) {
		e.chain = append(append([]string{}, prev.chain...), prev.Message)
	}
	return e
}

// Context appends a context string to the error's chain and returns it,
// mirroring the teacher's fmt.Errorf("%w") wrapping idiom but preserving
// the original Code instead of losing it behind an opaque wrapped error.
func (e *Error) Context(s string) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.chain = append(append([]string{}, e.chain...), s)
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "rerr: nil error"
	}
	parts := make([]string, 0, len(e.chain)+2)
	for i := len(e.chain) - 1; i >= 0; i-- {
		parts = append(parts, e.chain[i])
	}
	parts = append(parts, e.Message)
	msg := strings.Join(parts, ": ")
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the wrapped cause, enabling errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Recoverable reports whether callers may ignore this error and keep
// reading input, per the spec's error-handling policy.
func Recoverable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return recoverable[e.Code]
}

// CodeOf extracts the Code from err, or CodeMaybeBug if err isn't an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeMaybeBug
}
