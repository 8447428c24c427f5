package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
		"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand",
	)
)

// UpdateParcelStatusCommand represents an admin driving a parcel through the
// lifecycle graph, with optional location and note context for the history.
type UpdateParcelStatusCommand struct {
	principal account.Principal
	parcelID  kernel.UUID
	target    parcel.Status
	location  string
	note      string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a command to transition a parcel.
// The target status must belong to the known status set; whether the
// transition is legal from the parcel's current status is checked by the
// aggregate at handling time.
func NewUpdateParcelStatusCommand(
	principal account.Principal, parcelID kernel.UUID, target string, location, note string,
) (UpdateParcelStatusCommand, error) {
	if err := principal.Validate(); err != nil {
		return UpdateParcelStatusCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return UpdateParcelStatusCommand{}, err
	}
	status, err := parcel.StatusFromString(target)
	if err != nil {
		return UpdateParcelStatusCommand{}, err
	}
	return UpdateParcelStatusCommand{
		principal: principal,
		parcelID:  parcelID,
		target:    status,
		location:  location,
		note:      note,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c UpdateParcelStatusCommand) Principal() account.Principal {
	return c.principal
}

// ParcelID returns the target parcel's record id.
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Target returns the requested status.
func (c UpdateParcelStatusCommand) Target() parcel.Status {
	return c.target
}

// Location returns the optional location context.
func (c UpdateParcelStatusCommand) Location() string {
	return c.location
}

// Note returns the optional note.
func (c UpdateParcelStatusCommand) Note() string {
	return c.note
}
