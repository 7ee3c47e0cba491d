package errors

import (
	"errors"
	"fmt"
)

// Error represents a typed domain error callers can branch on.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code so Clone'd variants still compare equal to
// their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Predefined errors covering every condition the engine and aggregator report.
var (
	ErrNotFound            = New("NOT_FOUND", "resource not found")
	ErrCapacityExceeded    = New("CAPACITY_EXCEEDED", "course offering is full")
	ErrDuplicateEnrollment = New("DUPLICATE_ENROLLMENT", "student already enrolled in offering")
	ErrInvalidGrade        = New("INVALID_GRADE", "grade outside allowed set")
	ErrConstraintViolation = New("CONSTRAINT_VIOLATION", "store rejected the change")
	ErrValidation          = New("VALIDATION_ERROR", "validation failed")
	ErrInternal            = New("INTERNAL_ERROR", "internal error")
	ErrCacheMiss           = New("CACHE_MISS", "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
