package domain

import (
	"errors"
	"fmt"
)

// ErrAccountNotFound is the single signal every directory backend returns
// for an unknown account or a failed credential check.
var ErrAccountNotFound = errors.New("account not found")

// ValidationError indicates malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError indicates a credential mismatch. Message is always
// generic so callers can surface it as-is.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// NotFoundError indicates an account, role, group or domain is absent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError indicates a duplicate name or duplicate assignment.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// IntegrityError indicates a referenced row is missing on write.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string { return e.Message }

// TransientStoreError wraps lock timeouts and upstream failures.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("%s: transient failure: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error { return e.Err }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidCredentials is the one message shown for any failed login.
func ErrInvalidCredentials() *AuthenticationError {
	return &AuthenticationError{Message: "Invalid email or password."}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrIntegrity creates an IntegrityError with a formatted message.
func ErrIntegrity(format string, args ...any) *IntegrityError {
	return &IntegrityError{Message: fmt.Sprintf(format, args...)}
}

// ErrTransient wraps err as a TransientStoreError.
func ErrTransient(op string, err error) *TransientStoreError {
	return &TransientStoreError{Op: op, Err: err}
}

// IsTransient reports whether err is, or wraps, a TransientStoreError.
func IsTransient(err error) bool {
	var te *TransientStoreError
	return errors.As(err, &te)
}
