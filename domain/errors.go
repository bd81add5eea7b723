package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeValidation ErrorCode = "VALIDATION"
	ErrCodeInvalid    ErrorCode = "INVALID"
	ErrCodeInternal   ErrorCode = "INTERNAL"
)

// Error represents a domain-level error. Details carries one entry per
// violated field for validation failures and is empty otherwise.
type Error struct {
	Code    ErrorCode
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewTaskNotFound reports a missing task, naming the id the caller asked for.
func NewTaskNotFound(id string) *Error {
	return NewError(ErrCodeNotFound, fmt.Sprintf("task with id %s not found", id))
}

// NewValidationError carries per-field violation messages.
func NewValidationError(details []string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Details: details,
	}
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
