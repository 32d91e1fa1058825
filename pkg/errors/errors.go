// Package errors provides structured error types for brewdeps.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input or definition validation failures
//   - *_UNAVAILABLE / NOT_FOUND: Resource cannot be located
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDependency, "dependency %q is both recommended and optional", name)
//	if errors.Is(err, errors.ErrCodeInvalidDependency) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormula, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDependency Code = "INVALID_DEPENDENCY"
	ErrCodeInvalidTap        Code = "INVALID_TAP"
	ErrCodeInvalidFormula    Code = "INVALID_FORMULA"
	ErrCodeInvalidSpec       Code = "INVALID_SPEC"
	ErrCodeInvalidReceipt    Code = "INVALID_RECEIPT"

	// Resolution errors
	ErrCodeNotFound           Code = "NOT_FOUND"
	ErrCodeFormulaUnavailable Code = "FORMULA_UNAVAILABLE"
	ErrCodeTapUnavailable     Code = "TAP_UNAVAILABLE"
	ErrCodeAmbiguousFormula   Code = "AMBIGUOUS_FORMULA"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an error carrying a matching code,
// so a FORMULA_UNAVAILABLE wrapped inside an INTERNAL_ERROR is still found.
func Is(err error, code Code) bool {
	for err != nil {
		if c, ok := codeOf(err); ok && c == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		if c, ok := codeOf(err); ok {
			return c
		}
		err = errors.Unwrap(err)
	}
	return ""
}

func codeOf(err error) (Code, bool) {
	switch e := err.(type) {
	case *Error:
		return e.Code, true
	case interface{ Code() Code }:
		return e.Code(), true
	}
	return "", false
}

// UserMessage returns the message of the first coded error in the chain,
// without its code prefix, or err.Error() when there is none.
func UserMessage(err error) string {
	var amb *AmbiguousFormulaError
	if errors.As(err, &amb) {
		return amb.message()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FormulaUnavailable returns the error used when no definition exists for name.
func FormulaUnavailable(name string) *Error {
	return New(ErrCodeFormulaUnavailable, "no available formula with the name %q", name)
}

// AmbiguousFormulaError reports a bare formula name provided by several taps.
type AmbiguousFormulaError struct {
	Name       string   // The bare name that was requested
	Candidates []string // Fully-qualified names, one per providing tap
}

// Error implements the error interface.
func (e *AmbiguousFormulaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeAmbiguousFormula, e.message())
}

func (e *AmbiguousFormulaError) message() string {
	return fmt.Sprintf("formulae found in multiple taps for %q: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// Code returns the error code for this error type.
func (e *AmbiguousFormulaError) Code() Code {
	return ErrCodeAmbiguousFormula
}
