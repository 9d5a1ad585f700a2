package errors

import (
	"errors"
	"fmt"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// ValidationError is malformed, oversized or empty input. Field names the
// offending request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthorizationError is returned when the subject is known but not allowed.
// It carries no detail on purpose.
type AuthorizationError struct{}

func (e *AuthorizationError) Error() string {
	return "Forbidden"
}

// NotFoundError covers missing, soft-deleted, invisible and malformed ids alike.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "Not found"
	}
	return e.Resource + " not found"
}

type CsrfError struct {
	Reason string
}

func (e *CsrfError) Error() string {
	return "CSRF token invalid"
}

// ConflictError is a uniqueness violation.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// DependencyError wraps a failure of the storage or identity collaborator.
// Error() carries the internal detail for logs; callers only ever see a
// generic message.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func NewForbidden() error {
	return &AuthorizationError{}
}

func NewConflict(field, message string) error {
	return &ConflictError{Field: field, Message: message}
}

func NewDependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

// Is reports whether err or anything it wraps is a T.
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// As returns the first T in err's chain.
func As[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
