package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeLoad         ErrorCode = "LOAD_FAILED"
	ErrCodePersistence  ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Fields  []string
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

// NewValidationError reports the draft fields that failed validation.
func NewValidationError(fields []string, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalid,
		Message: "invalid fields: " + strings.Join(fields, ", "),
		Fields:  fields,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrActivityNotFound = NewError(ErrCodeNotFound, "activity not found")
	ErrTokenNotFound    = NewError(ErrCodeNotFound, "delete confirmation not found")
	ErrNotLoaded        = NewError(ErrCodeLoad, "activities not loaded")
	ErrNoDraft          = NewError(ErrCodeInvalid, "no draft staged")
	ErrUnauthorized     = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
