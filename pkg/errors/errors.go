// Package errors provides structured error types for Slide Linker.
//
// Every failure a compile can produce maps to one [Code]:
//   - IMAGE_READ: a slide image is missing or unreadable
//   - IMAGE_DECODE: a slide image is corrupt or in an unsupported format
//   - DOCUMENT_ASSEMBLY: the output document could not be built or serialized
//   - OUTPUT_WRITE: the finished artifact could not be persisted
//
// Errors raised while reading or decoding a slide image carry the image path
// in [Error.Path] so callers can point at the offending file.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidProject, "duplicate slide id %q", id)
//	if errors.Is(err, errors.ErrCodeInvalidProject) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.WrapPath(errors.ErrCodeImageRead, origErr, path, "read slide image")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Compile errors
	ErrCodeImageRead        Code = "IMAGE_READ"
	ErrCodeImageDecode      Code = "IMAGE_DECODE"
	ErrCodeDocumentAssembly Code = "DOCUMENT_ASSEMBLY"
	ErrCodeOutputWrite      Code = "OUTPUT_WRITE"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidProject Code = "INVALID_PROJECT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidURL     Code = "INVALID_URL"

	// Ingestion errors
	ErrCodeConverterUnavailable Code = "CONVERTER_UNAVAILABLE"
	ErrCodeConversionFailed     Code = "CONVERSION_FAILED"

	// Infrastructure errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeCache        Code = "CACHE_ERROR"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Path    string // File the error concerns (optional)
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
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

// WrapPath is like [Wrap] but records the file the failure concerns.
func WrapPath(code Code, cause error, path, format string, args ...any) *Error {
	e := Wrap(code, cause, format, args...)
	e.Path = path
	return e
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetPath returns the file path attached to err, if any.
func GetPath(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Path != "" {
			return fmt.Sprintf("%s: %s", e.Message, e.Path)
		}
		return e.Message
	}
	return err.Error()
}
