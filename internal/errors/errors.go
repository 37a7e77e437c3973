package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing failures.
const (
	ErrConfig   = "CONFIG"
	ErrPanel    = "PANEL"
	ErrChannel  = "CHANNEL"
	ErrDelivery = "DELIVERY"
	ErrChat     = "CHAT"
	ErrLock     = "LOCK"
)

// Error is a structured error with a code, a message, an optional fix suggestion and cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed>
//
//	  <How to fix it>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps err with a message under the ErrChat code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrChat,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps err with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Short returns the message and cause on one line, suitable for log output.
func (e *Error) Short() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// IsCode reports whether err is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pwErr *Error
	if errors.As(err, &pwErr) {
		return pwErr.Code == code
	}
	return false
}

// Brief renders any error on a single line. Structured errors use Short.
func Brief(err error) string {
	if err == nil {
		return ""
	}
	var pwErr *Error
	if errors.As(err, &pwErr) {
		return pwErr.Short()
	}
	return err.Error()
}

// As returns the first structured error in err's chain.
func As(err error) (*Error, bool) {
	var pwErr *Error
	if errors.As(err, &pwErr) {
		return pwErr, true
	}
	return nil, false
}
