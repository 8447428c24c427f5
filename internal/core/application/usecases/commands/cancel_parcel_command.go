package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCancelParcelCommandIsNotConstructed = errors.New(
		"CancelParcelCommand must be created via NewCancelParcelCommand",
	)
)

// CancelParcelCommand represents a sender withdrawing their own parcel
// before dispatch. An empty reason falls back to "Cancelled by sender".
type CancelParcelCommand struct {
	principal account.Principal
	parcelID  kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewCancelParcelCommand creates a command to cancel a parcel.
func NewCancelParcelCommand(
	principal account.Principal, parcelID kernel.UUID, reason string,
) (CancelParcelCommand, error) {
	if err := principal.Validate(); err != nil {
		return CancelParcelCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return CancelParcelCommand{}, err
	}
	return CancelParcelCommand{
		principal: principal,
		parcelID:  parcelID,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelParcelCommand) Validate() error {
	return c.guard.Validate(ErrCancelParcelCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c CancelParcelCommand) Principal() account.Principal {
	return c.principal
}

// ParcelID returns the target parcel's record id.
func (c CancelParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Reason returns the cancellation reason, possibly empty.
func (c CancelParcelCommand) Reason() string {
	return c.reason
}
