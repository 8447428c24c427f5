// Package errs provides the typed errors used across the parcel service.
//
// Two groups of errors live here. The value-object helpers
// (ValueIsRequiredError, ValueIsInvalidError, ObjectNotFoundError) guard
// constructors and lookups. The operation taxonomy (UnauthorizedError,
// ForbiddenError, InvalidTransitionError, ValidationFailedError,
// ConflictError, InternalError) classifies use-case outcomes so transport
// adapters can map them to response codes without inspecting messages.
//
// Every type follows the same pattern:
//   - a package sentinel (e.g. ErrForbidden) usable with errors.Is
//   - a struct carrying the error details
//   - constructors with and without an underlying cause
//   - Error() for formatting and Unwrap() back to the sentinel
//
// ValidationFailedError additionally accumulates multiple violation messages
// so callers can report every problem with an input at once.
package errs
