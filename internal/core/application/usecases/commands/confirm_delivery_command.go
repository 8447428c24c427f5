package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
		"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand",
	)
)

// ConfirmDeliveryCommand represents the receiver confirming that an
// OUT_FOR_DELIVERY parcel reached them. The confirming email is matched
// against the parcel's receiver snapshot; the receiver does not need a
// registered account.
type ConfirmDeliveryCommand struct {
	receiverEmail string
	parcelID      kernel.UUID
	note          string

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm delivery.
func NewConfirmDeliveryCommand(
	receiverEmail string, parcelID kernel.UUID, note string,
) (ConfirmDeliveryCommand, error) {
	if receiverEmail == "" {
		return ConfirmDeliveryCommand{}, errs.NewValueIsRequiredError("receiverEmail")
	}
	if err := parcelID.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{
		receiverEmail: receiverEmail,
		parcelID:      parcelID,
		note:          note,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// ReceiverEmail returns the confirming email.
func (c ConfirmDeliveryCommand) ReceiverEmail() string {
	return c.receiverEmail
}

// ParcelID returns the target parcel's record id.
func (c ConfirmDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Note returns the optional confirmation note.
func (c ConfirmDeliveryCommand) Note() string {
	return c.note
}
