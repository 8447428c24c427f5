package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrBlockParcelCommandIsNotConstructed = errors.New(
		"BlockParcelCommand must be created via NewBlockParcelCommand",
	)
)

// BlockParcelCommand represents an admin raising or clearing the
// administrative freeze on a parcel. The action is orthogonal to the status
// machine: it neither checks nor changes the current status.
type BlockParcelCommand struct {
	principal account.Principal
	parcelID  kernel.UUID
	blocked   bool
	reason    string

	guard guard.ConstructorGuard
}

// NewBlockParcelCommand creates a command to block or unblock a parcel.
func NewBlockParcelCommand(
	principal account.Principal, parcelID kernel.UUID, blocked bool, reason string,
) (BlockParcelCommand, error) {
	if err := principal.Validate(); err != nil {
		return BlockParcelCommand{}, err
	}
	if err := parcelID.Validate(); err != nil {
		return BlockParcelCommand{}, err
	}
	return BlockParcelCommand{
		principal: principal,
		parcelID:  parcelID,
		blocked:   blocked,
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BlockParcelCommand) Validate() error {
	return c.guard.Validate(ErrBlockParcelCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c BlockParcelCommand) Principal() account.Principal {
	return c.principal
}

// ParcelID returns the target parcel's record id.
func (c BlockParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Blocked returns the requested flag state.
func (c BlockParcelCommand) Blocked() bool {
	return c.blocked
}

// Reason returns the optional reason recorded in the history.
func (c BlockParcelCommand) Reason() string {
	return c.reason
}
