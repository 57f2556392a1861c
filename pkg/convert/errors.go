// Unified error handling for the dual extruder converter
//
// Copyright (C) 2026  Simon Clay
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package convert

import "fmt"

// ErrorCode represents the category of a conversion failure. Every
// fault is terminal: the run aborts, nothing is retried.
type ErrorCode string

const (
	// ErrValidation is a filament diameter outside the accepted range.
	// Raised before any file is opened.
	ErrValidation ErrorCode = "VALIDATION"

	// ErrOpen is an unreadable input or uncreatable output path.
	ErrOpen ErrorCode = "OPEN"

	// ErrConflict means both extruders were observed active in one
	// document. Raised before the output file is created.
	ErrConflict ErrorCode = "CONFLICT"

	// ErrUsage means no active extruder was found in the document.
	// Raised before the output file is created.
	ErrUsage ErrorCode = "USAGE"

	// ErrFormat is an overlong argument token or a missing required
	// speed argument, found mid-transform. The output file may be
	// left partially written.
	ErrFormat ErrorCode = "FORMAT"
)

// ConvertError is the unified error type for the converter.
type ConvertError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Line is the 1-based source line number, when known
	Line int

	// Path is the file path involved, when known
	Path string

	// Err wraps the underlying error
	Err error
}

// Error implements the error interface
func (e *ConvertError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] %s in line %d", e.Code, e.Message, e.Line)
	}
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// ValidationError creates an error for a diameter outside the accepted range
func ValidationError(diameter, min, max float64) *ConvertError {
	return &ConvertError{
		Code:    ErrValidation,
		Message: fmt.Sprintf("filament diameter %g outside [%g, %g]", diameter, min, max),
	}
}

// OpenError creates an error for a file that cannot be opened or created
func OpenError(verb, path string, err error) *ConvertError {
	return &ConvertError{
		Code:    ErrOpen,
		Message: fmt.Sprintf("can't %s file", verb),
		Path:    path,
		Err:     err,
	}
}

// ConflictError creates an error for a document already using both extruders
func ConflictError() *ConvertError {
	return &ConvertError{
		Code:    ErrConflict,
		Message: "file already uses both extruders",
	}
}

// UsageError creates an error for a document using neither extruder
func UsageError() *ConvertError {
	return &ConvertError{
		Code:    ErrUsage,
		Message: "no used extruder found",
	}
}

// FormatError creates an error for a malformed argument at a source line
func FormatError(line int, message string) *ConvertError {
	return &ConvertError{
		Code:    ErrFormat,
		Message: message,
		Line:    line,
	}
}

// Is checks if err is a ConvertError with the given code
func Is(err error, code ErrorCode) bool {
	if ce, ok := err.(*ConvertError); ok {
		return ce.Code == code
	}
	return false
}
