package model

import (
	"errors"
	"fmt"
)

// Error is a coded error raised by the model, the parsers and the converter.
// Two errors are considered equal by errors.Is when their codes match.
type Error struct {
	Code    string // Error code (e.g., "PW-TEXT-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Line    int    // 1-based source line for text format errors, 0 if unknown
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Details != "" {
		msg = msg + ": " + e.Details
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(format string, args ...any) *Error {
	c := *e
	c.Details = fmt.Sprintf(format, args...)
	return &c
}

// AtLine returns a copy of the error bound to a source line.
func (e *Error) AtLine(line int) *Error {
	c := *e
	c.Line = line
	return &c
}

// Wrap returns a copy of the error wrapping the given cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Cause = cause
	return &c
}

// ErrorCode extracts the error code from err if it is an *Error.
func ErrorCode(err error) string {
	var me *Error
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}

// ============================================================================
// Input errors. These are recoverable: the walk engine catches them and ends
// the walk early.
// ============================================================================

var (
	// ErrStream indicates an I/O failure on the underlying source.
	ErrStream = NewError("PW-STRM-5000", "stream read failed")

	// ErrFormat indicates malformed text exposition input.
	ErrFormat = NewError("PW-TEXT-4000", "malformed text exposition")

	// ErrDecode indicates corrupt delimited framing or protobuf payload.
	ErrDecode = NewError("PW-PROT-4000", "malformed delimited protobuf")

	// ErrSchemaMismatch indicates a decoded family whose payload does not
	// match its declared type.
	ErrSchemaMismatch = NewError("PW-PROT-4220", "metric family schema mismatch")
)

// ============================================================================
// Construction errors. These indicate programming defects.
// ============================================================================

var (
	// ErrInvalidLabels indicates an empty or duplicated label name.
	ErrInvalidLabels = NewError("PW-MODL-4002", "invalid label set")

	// ErrInvalidMetric indicates a metric that cannot be constructed.
	ErrInvalidMetric = NewError("PW-MODL-4000", "invalid metric")

	// ErrInvalidFamily indicates a family that cannot be constructed.
	ErrInvalidFamily = NewError("PW-MODL-4001", "invalid metric family")
)
