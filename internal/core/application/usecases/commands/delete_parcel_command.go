package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrDeleteParcelCommandIsNotConstructed = errors.New(
		"DeleteParcelCommand must be created via NewDeleteParcelCommand",
	)
)

// DeleteParcelCommand represents an admin hard-deleting a parcel. There is
// no soft delete or tombstone; the record and its history are removed.
type DeleteParcelCommand struct {
	principal account.Principal
	parcelID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteParcelCommand creates a command to delete a parcel.
func NewDeleteParcelCommand(
	principal account.Principal, parcelID kernel.UUID,
) (DeleteParcelCommand, error) {
	if err := principal.Validate(); err != nil {
		return DeleteParcelCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return DeleteParcelCommand{}, err
	}
	return DeleteParcelCommand{
		principal: principal,
		parcelID:  parcelID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c DeleteParcelCommand) Principal() account.Principal {
	return c.principal
}

// ParcelID returns the target parcel's record id.
func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}
