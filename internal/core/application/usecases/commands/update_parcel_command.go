package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrUpdateParcelCommandIsNotConstructed = errors.New(
		"UpdateParcelCommand must be created via NewUpdateParcelCommand",
	)
)

// UpdateParcelCommand represents a sender's pre-dispatch partial update of
// their own parcel. Nested sections merge field by field.
type UpdateParcelCommand struct {
	principal account.Principal
	parcelID  kernel.UUID
	patch     parcel.UpdatePatch

	guard guard.ConstructorGuard
}

// NewUpdateParcelCommand creates a command to partially update a parcel.
func NewUpdateParcelCommand(
	principal account.Principal, parcelID kernel.UUID, patch parcel.UpdatePatch,
) (UpdateParcelCommand, error) {
	if err := principal.Validate(); err != nil {
		return UpdateParcelCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return UpdateParcelCommand{}, err
	}
	return UpdateParcelCommand{
		principal: principal,
		parcelID:  parcelID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c UpdateParcelCommand) Principal() account.Principal {
	return c.principal
}

// ParcelID returns the target parcel's record id.
func (c UpdateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Patch returns the partial update.
func (c UpdateParcelCommand) Patch() parcel.UpdatePatch {
	return c.patch
}
