package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrAssignPersonnelCommandIsNotConstructed = errors.New(
		"AssignPersonnelCommand must be created via NewAssignPersonnelCommand",
	)
)

// AssignPersonnelCommand represents an admin attaching delivery personnel to
// a parcel. The assignment is independent of the status machine.
type AssignPersonnelCommand struct {
	principal   account.Principal
	parcelID    kernel.UUID
	personnelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPersonnelCommand creates a command to assign personnel.
func NewAssignPersonnelCommand(
	principal account.Principal, parcelID, personnelID kernel.UUID,
) (AssignPersonnelCommand, error) {
	if err := principal.Validate(); err != nil {
		return AssignPersonnelCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return AssignPersonnelCommand{}, err
	}
	if err := personnelID.Validate(); err != nil {
		return AssignPersonnelCommand{}, err
	}
	return AssignPersonnelCommand{
		principal:   principal,
		parcelID:    parcelID,
		personnelID: personnelID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPersonnelCommand) Validate() error {
	return c.guard.Validate(ErrAssignPersonnelCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c AssignPersonnelCommand) Principal() account.Principal {
	return c.principal
}

// ParcelID returns the target parcel's record id.
func (c AssignPersonnelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// PersonnelID returns the referenced personnel account id.
func (c AssignPersonnelCommand) PersonnelID() kernel.UUID {
	return c.personnelID
}
