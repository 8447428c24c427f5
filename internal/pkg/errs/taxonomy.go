package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the parcel lifecycle failure taxonomy. The transport
// layer maps these to response codes; the core only raises them.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidationFailed  = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrInternal          = errors.New("internal error")
)

// UnauthorizedError indicates that no valid principal accompanied the call.
type UnauthorizedError struct {
	Reason string
	Cause  error
}

// NewUnauthorizedError creates an UnauthorizedError with the given reason.
func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

// NewUnauthorizedErrorWithCause creates an UnauthorizedError wrapping an underlying cause.
func NewUnauthorizedErrorWithCause(reason string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUnauthorized, e.Reason, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrUnauthorized, e.Reason))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ForbiddenError indicates that the principal lacks permission for the
// requested operation on this particular entity.
type ForbiddenError struct {
	Reason string
	Cause  error
}

// NewForbiddenError creates a ForbiddenError with the given reason.
func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping an underlying cause.
func NewForbiddenErrorWithCause(reason string, cause error) *ForbiddenError {
	return &ForbiddenError{Reason: reason, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrForbidden, e.Reason, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrForbidden, e.Reason))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError indicates a status change that the lifecycle graph
// does not permit. Both endpoints are carried so the message always names the
// current and the requested status.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given endpoints.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: cannot transition from %s to %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidationFailedError carries every business-rule violation found in a
// payload, joined into a single message. Callers accumulate messages rather
// than stopping at the first failure.
type ValidationFailedError struct {
	Messages []string
}

// NewValidationFailedError creates a ValidationFailedError from one or more messages.
func NewValidationFailedError(messages ...string) *ValidationFailedError {
	return &ValidationFailedError{Messages: messages}
}

func (e *ValidationFailedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(e.Messages, "; ")))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// ConflictError indicates that a uniqueness constraint or a concurrent
// modification prevented the write.
type ConflictError struct {
	ParamName string
	Value     any
	Cause     error
}

// NewConflictError creates a ConflictError for the conflicting parameter.
func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, value any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s %v already in use (cause: %s)", ErrConflict, e.ParamName, e.Value, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %v already in use", ErrConflict, e.ParamName, e.Value))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InternalError indicates an unexpected failure the caller cannot act on,
// such as an exhausted tracking-id generation loop or a store fault.
type InternalError struct {
	Reason string
	Cause  error
}

// NewInternalError creates an InternalError with the given reason.
func NewInternalError(reason string) *InternalError {
	return &InternalError{Reason: reason}
}

// NewInternalErrorWithCause creates an InternalError wrapping an underlying cause.
func NewInternalErrorWithCause(reason string, cause error) *InternalError {
	return &InternalError{Reason: reason, Cause: cause}
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrInternal, e.Reason, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrInternal, e.Reason))
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}
