// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown            = "UNKNOWN_ERROR"
	CodeIOError            = "IO_ERROR"
	CodeMalformedNetlist   = "MALFORMED_NETLIST"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeConfigError        = "CONFIG_ERROR"
	CodeStorageError       = "STORAGE_ERROR"
	CodeDatabaseError      = "DATABASE_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrIOError            = New(CodeIOError, "I/O error")
	ErrMalformedNetlist   = New(CodeMalformedNetlist, "malformed netlist")
	ErrInvariantViolation = New(CodeInvariantViolation, "invariant violation")
	ErrConfigError        = New(CodeConfigError, "configuration error")
	ErrStorageError       = New(CodeStorageError, "storage error")
	ErrDatabaseError      = New(CodeDatabaseError, "database error")
)

// IsIOError checks if the error is an I/O error.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIOError)
}

// IsMalformedNetlistError checks if the error is a malformed-netlist error.
func IsMalformedNetlistError(err error) bool {
	return errors.Is(err, ErrMalformedNetlist)
}

// IsConfigError checks if the error is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigError)
}

// IsStorageError checks if the error is a storage error.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageError)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// InvariantViolation is the panic value raised by Invariant. It carries an
// *AppError so a recovering test harness can still inspect Code/Message.
type InvariantViolation struct {
	*AppError
}

// Invariant panics with an InvariantViolation built from the given
// printf-style message. It has no recoverable return path: a tripped
// invariant means the caller's bookkeeping has already diverged from
// reality, and continuing would only compound it (contract violations
// abort rather than propagate as errors).
func Invariant(format string, args ...any) {
	panic(InvariantViolation{AppError: New(CodeInvariantViolation, fmt.Sprintf(format, args...))})
}
