package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	// A unique or composite-unique constraint was breached
	ErrCodeConstraintViolation = "CONSTRAINT_VIOLATION"

	// A referenced identifier does not exist
	ErrCodeNotFound = "NOT_FOUND"

	// A field failed type, length or enum checks
	ErrCodeValidation = "VALIDATION_ERROR"

	// An operation needs file storage and none is configured
	ErrCodeStorageNotConfigured = "STORAGE_NOT_CONFIGURED"
)

// Error is the failure surfaced to callers of the data-access layer.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, ErrNotFound) holds for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new Error
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Predefined errors, for use with errors.Is
var (
	ErrConstraintViolation = NewError(ErrCodeConstraintViolation, "constraint violation")
	ErrNotFound            = NewError(ErrCodeNotFound, "not found")
	ErrValidation          = NewError(ErrCodeValidation, "validation failed")

	ErrStorageNotConfigured = NewError(ErrCodeStorageNotConfigured, "document storage is not configured")
)

// ConstraintViolation reports a breached unique constraint on entity.
func ConstraintViolation(entity, constraint string, cause error) *Error {
	return &Error{
		Code:    ErrCodeConstraintViolation,
		Message: fmt.Sprintf("%s violates unique constraint %s", entity, constraint),
		Details: map[string]string{"entity": entity, "constraint": constraint},
		Err:     cause,
	}
}

// NotFound reports a missing entity.
func NotFound(entity string, id interface{}) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %v not found", entity, id),
		Details: map[string]string{"entity": entity, "id": fmt.Sprint(id)},
	}
}

// MissingReference reports an insert or update naming a row that does not exist.
func MissingReference(entity string, cause error) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s references a record that does not exist", entity),
		Details: map[string]string{"entity": entity},
		Err:     cause,
	}
}

// Validation reports invalid input. fields maps field names to the failed rule.
func Validation(message string, fields map[string]string) *Error {
	e := &Error{
		Code:    ErrCodeValidation,
		Message: message,
	}
	if len(fields) > 0 {
		e.Details = fields
	}
	return e
}

func IsConstraintViolation(err error) bool {
	return stderrors.Is(err, ErrConstraintViolation)
}

func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return stderrors.Is(err, ErrValidation)
}

func IsStorageNotConfigured(err error) bool {
	return stderrors.Is(err, ErrStorageNotConfigured)
}
