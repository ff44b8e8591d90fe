package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// Ledger specific failures.
var (
	ErrInvalidRange             = errors.New("invalid date range")
	ErrPeriodOverlap            = errors.New("period overlaps an existing period")
	ErrInvalidState             = errors.New("invalid state for requested operation")
	ErrUnbalanced               = errors.New("debits and credits do not balance")
	ErrNoPeriodForDate          = errors.New("no period covers the transaction date")
	ErrPeriodClosed             = errors.New("period is not open for posting")
	ErrInactiveOrUnknownAccount = errors.New("account is unknown or inactive")
)

// StateError reports the state a resource was in when a transition was refused.
// It unwraps to ErrInvalidState.
type StateError struct {
	Resource string
	ID       string
	Current  string
	Wanted   string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %s is %s, requires %s", e.Resource, e.ID, e.Current, e.Wanted)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

// NewStateError builds a StateError.
func NewStateError(resource, id, current, wanted string) error {
	return &StateError{Resource: resource, ID: id, Current: current, Wanted: wanted}
}

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error wrapping ErrNotFound for the named resource.
func NewNotFoundError(resource, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}
