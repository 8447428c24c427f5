package commands

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand",
	)
)

// CreateParcelPayload carries the sender-supplied attributes of a new parcel.
// Field-level shape constraints (types, lengths, enum spellings) are checked
// by the transport-side schema validator; the domain constructors and the fee
// input validation enforce the business rules on top.
type CreateParcelPayload struct {
	ReceiverName    string
	ReceiverEmail   string
	ReceiverPhone   string
	ReceiverAddress string

	ParcelType    string
	WeightKg      float64
	Dimensions    string
	Description   string
	DeclaredValue float64

	PreferredDeliveryDate *time.Time
	DeliveryInstructions  string
	Urgency               string

	Discount   float64
	CouponCode string
}

// CreateParcelCommand represents a sender's request to create a new parcel.
// The parcel is created in REQUESTED status with computed pricing and a
// collision-free tracking id.
type CreateParcelCommand struct {
	principal account.Principal
	payload   CreateParcelPayload

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new parcel.
// Requires a valid principal; payload business rules are checked by the handler.
func NewCreateParcelCommand(
	principal account.Principal, payload CreateParcelPayload,
) (CreateParcelCommand, error) {
	if err := principal.Validate(); err != nil {
		return CreateParcelCommand{}, err
	}
	return CreateParcelCommand{
		principal: principal,
		payload:   payload,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// Principal returns the authenticated caller.
func (c CreateParcelCommand) Principal() account.Principal {
	return c.principal
}

// Payload returns the new parcel's attributes.
func (c CreateParcelCommand) Payload() CreateParcelPayload {
	return c.payload
}
