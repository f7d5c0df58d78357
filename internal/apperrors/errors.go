package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is known but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the resource was modified concurrently.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// ErrPersistence indicates that a write to the ledger store failed.
var ErrPersistence = errors.New("persistence failure")

// ErrNoReference indicates that a journal entry has no source document to derive lines from.
var ErrNoReference = errors.New("journal entry has no source document reference")

// ErrUnsupportedReferenceKind indicates a reference kind with no handling for the requested operation.
var ErrUnsupportedReferenceKind = errors.New("unsupported reference kind")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is reports 5xx AppErrors as ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= http.StatusInternalServerError
}

// ValidationKind enumerates why an edit or generated posting was rejected.
type ValidationKind string

const (
	EmptyLines        ValidationKind = "empty_lines"
	Unbalanced        ValidationKind = "unbalanced"
	ReasonRequired    ValidationKind = "reason_required"
	InvalidAccount    ValidationKind = "invalid_account"
	InvalidAmount     ValidationKind = "invalid_amount"
	ReferenceMismatch ValidationKind = "reference_mismatch"
)

// ValidationError is returned when ledger input breaks an invariant.
type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

// NewValidationError creates a ValidationError.
func NewValidationError(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("validation error: %s", e.Kind)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Kind, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PermissionKind enumerates why an edit was refused.
type PermissionKind string

const (
	NotOwner  PermissionKind = "not_owner"
	Protected PermissionKind = "protected"
)

// PermissionError is returned when the caller may not modify an entry.
type PermissionError struct {
	Kind   PermissionKind
	Detail string
}

func (e *PermissionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("permission denied: %s", e.Kind)
	}
	return fmt.Sprintf("permission denied: %s: %s", e.Kind, e.Detail)
}

func (e *PermissionError) Unwrap() error { return ErrForbidden }

// NotFoundError names the resource that could not be found.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UnsupportedReferenceKindError is returned when no template or sync rule exists for a kind.
type UnsupportedReferenceKindError struct {
	Kind      string
	Operation string
}

func (e *UnsupportedReferenceKindError) Error() string {
	return fmt.Sprintf("%s: %q is not supported for %s", ErrUnsupportedReferenceKind, e.Kind, e.Operation)
}

func (e *UnsupportedReferenceKindError) Unwrap() error { return ErrUnsupportedReferenceKind }

// PersistenceError wraps a store failure with the operation that failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s during %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }
