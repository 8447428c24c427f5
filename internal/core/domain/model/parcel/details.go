package parcel

import (
	"fmt"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ParcelType categorizes the physical contents of a parcel.
type ParcelType string

const (
	TypeDocument    ParcelType = "document"
	TypePackage     ParcelType = "package"
	TypeFragile     ParcelType = "fragile"
	TypeElectronics ParcelType = "electronics"
	TypeOther       ParcelType = "other"
)

// parcelTypes returns the set of valid parcel types.
func parcelTypes() map[ParcelType]struct{} {
	return map[ParcelType]struct{}{
		TypeDocument:    {},
		TypePackage:     {},
		TypeFragile:     {},
		TypeElectronics: {},
		TypeOther:       {},
	}
}

// Validate checks that the parcel type is one of the known categories.
func (t ParcelType) Validate() error {
	if _, ok := parcelTypes()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("parcelType",
			fmt.Errorf("%q is not a valid parcel type", string(t)))
	}
	return nil
}

// String returns the storage and wire representation of the type.
func (t ParcelType) String() string {
	return string(t)
}

var (
	// ErrReceiverIsNotConstructed is returned when a Receiver bypassed NewReceiver.
	ErrReceiverIsNotConstructed = errs.NewValueIsRequiredError("Receiver must be created via NewReceiver")

	// ErrDetailsAreNotConstructed is returned when Details bypassed NewDetails.
	ErrDetailsAreNotConstructed = errs.NewValueIsRequiredError("Details must be created via NewDetails")

	// ErrDeliveryInfoIsNotConstructed is returned when DeliveryInfo bypassed NewDeliveryInfo.
	ErrDeliveryInfoIsNotConstructed = errs.NewValueIsRequiredError("DeliveryInfo must be created via NewDeliveryInfo")
)

// Receiver is an embedded snapshot of who the parcel is addressed to.
// It deliberately is not a live reference to a user account: the receiver may
// be a person who never registered on the platform. The email is the key used
// to match a registered receiver at read and confirmation time.
type Receiver struct {
	name    string
	email   string
	phone   string
	address string

	guard guard.ConstructorGuard
}

// NewReceiver creates a receiver snapshot. All four fields are required.
func NewReceiver(name, email, phone, address string) (Receiver, error) {
	var messages []string
	if name == "" {
		messages = append(messages, "receiver name is required")
	}
	if email == "" {
		messages = append(messages, "receiver email is required")
	}
	if phone == "" {
		messages = append(messages, "receiver phone is required")
	}
	if address == "" {
		messages = append(messages, "receiver address is required")
	}
	if len(messages) > 0 {
		return Receiver{}, errs.NewValidationFailedError(messages...)
	}
	return Receiver{
		name:    name,
		email:   email,
		phone:   phone,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the receiver snapshot was created through NewReceiver.
func (r Receiver) Validate() error {
	return r.guard.Validate(ErrReceiverIsNotConstructed)
}

// Name returns the receiver's name.
func (r Receiver) Name() string { return r.name }

// Email returns the receiver's email, the key used for receiver matching.
func (r Receiver) Email() string { return r.email }

// Phone returns the receiver's phone number.
func (r Receiver) Phone() string { return r.phone }

// Address returns the receiver's delivery address.
func (r Receiver) Address() string { return r.address }

// merge applies a field-by-field patch and returns the updated snapshot.
// Unset patch fields keep their current values; the snapshot is never
// replaced wholesale.
func (r Receiver) merge(patch ReceiverPatch) (Receiver, error) {
	name, email, phone, address := r.name, r.email, r.phone, r.address
	if patch.Name != nil {
		name = *patch.Name
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if patch.Phone != nil {
		phone = *patch.Phone
	}
	if patch.Address != nil {
		address = *patch.Address
	}
	return NewReceiver(name, email, phone, address)
}

// Details describes the physical attributes of the parcel contents.
type Details struct {
	parcelType    ParcelType
	weightKg      float64
	dimensions    string
	description   string
	declaredValue float64

	guard guard.ConstructorGuard
}

// NewDetails creates the physical description of a parcel. The weight bounds
// are enforced by ValidateFeeInput at pricing time; here only structural
// validity is checked.
func NewDetails(
	parcelType ParcelType, weightKg float64, dimensions, description string, declaredValue float64,
) (Details, error) {
	var messages []string
	if err := parcelType.Validate(); err != nil {
		messages = append(messages, fmt.Sprintf("parcel type %q is not one of document, package, fragile, electronics, other", string(parcelType)))
	}
	if weightKg <= 0 {
		messages = append(messages, fmt.Sprintf("weight must be greater than 0, got %g", weightKg))
	}
	if description == "" {
		messages = append(messages, "description is required")
	}
	if declaredValue < 0 {
		messages = append(messages, fmt.Sprintf("declared value must not be negative, got %g", declaredValue))
	}
	if len(messages) > 0 {
		return Details{}, errs.NewValidationFailedError(messages...)
	}
	return Details{
		parcelType:    parcelType,
		weightKg:      weightKg,
		dimensions:    dimensions,
		description:   description,
		declaredValue: declaredValue,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the details were created through NewDetails.
func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

// Type returns the parcel category.
func (d Details) Type() ParcelType { return d.parcelType }

// WeightKg returns the parcel weight in kilograms.
func (d Details) WeightKg() float64 { return d.weightKg }

// Dimensions returns the free-form dimensions string, empty when not given.
func (d Details) Dimensions() string { return d.dimensions }

// Description returns the contents description.
func (d Details) Description() string { return d.description }

// DeclaredValue returns the declared monetary value, zero when not given.
func (d Details) DeclaredValue() float64 { return d.declaredValue }

// merge applies a field-by-field patch and returns the updated details.
func (d Details) merge(patch DetailsPatch) (Details, error) {
	parcelType, weightKg := d.parcelType, d.weightKg
	dimensions, description, declaredValue := d.dimensions, d.description, d.declaredValue
	if patch.Type != nil {
		parcelType = *patch.Type
	}
	if patch.WeightKg != nil {
		weightKg = *patch.WeightKg
	}
	if patch.Dimensions != nil {
		dimensions = *patch.Dimensions
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if patch.DeclaredValue != nil {
		declaredValue = *patch.DeclaredValue
	}
	return NewDetails(parcelType, weightKg, dimensions, description, declaredValue)
}

// DeliveryInfo carries the sender's delivery preferences.
type DeliveryInfo struct {
	preferredDeliveryDate *time.Time
	instructions          string
	urgency               Urgency

	guard guard.ConstructorGuard
}

// NewDeliveryInfo creates the delivery preferences. Only the urgency tier is
// mandatory.
func NewDeliveryInfo(preferredDeliveryDate *time.Time, instructions string, urgency Urgency) (DeliveryInfo, error) {
	if err := urgency.Validate(); err != nil {
		return DeliveryInfo{}, err
	}
	var preferred *time.Time
	if preferredDeliveryDate != nil {
		p := preferredDeliveryDate.UTC()
		preferred = &p
	}
	return DeliveryInfo{
		preferredDeliveryDate: preferred,
		instructions:          instructions,
		urgency:               urgency,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the delivery info was created through NewDeliveryInfo.
func (d DeliveryInfo) Validate() error {
	return d.guard.Validate(ErrDeliveryInfoIsNotConstructed)
}

// PreferredDeliveryDate returns the requested delivery date, nil when unset.
func (d DeliveryInfo) PreferredDeliveryDate() *time.Time {
	if d.preferredDeliveryDate == nil {
		return nil
	}
	p := *d.preferredDeliveryDate
	return &p
}

// Instructions returns the free-form delivery instructions.
func (d DeliveryInfo) Instructions() string { return d.instructions }

// Urgency returns the chosen urgency tier.
func (d DeliveryInfo) Urgency() Urgency { return d.urgency }

// merge applies a field-by-field patch and returns the updated info.
func (d DeliveryInfo) merge(patch DeliveryPatch) (DeliveryInfo, error) {
	preferred, instructions, urgency := d.preferredDeliveryDate, d.instructions, d.urgency
	if patch.PreferredDeliveryDate != nil {
		preferred = patch.PreferredDeliveryDate
	}
	if patch.Instructions != nil {
		instructions = *patch.Instructions
	}
	if patch.Urgency != nil {
		urgency = *patch.Urgency
	}
	return NewDeliveryInfo(preferred, instructions, urgency)
}

// ReceiverPatch is a partial update of the receiver snapshot. Nil fields are
// left untouched.
type ReceiverPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// DetailsPatch is a partial update of the parcel details. Nil fields are left
// untouched.
type DetailsPatch struct {
	Type          *ParcelType
	WeightKg      *float64
	Dimensions    *string
	Description   *string
	DeclaredValue *float64
}

// DeliveryPatch is a partial update of the delivery preferences. Nil fields
// are left untouched.
type DeliveryPatch struct {
	PreferredDeliveryDate *time.Time
	Instructions          *string
	Urgency               *Urgency
}

// UpdatePatch is the sender-facing partial update applied pre-dispatch.
// Nested sections merge field by field; a nil section is left untouched.
type UpdatePatch struct {
	Receiver *ReceiverPatch
	Details  *DetailsPatch
	Delivery *DeliveryPatch
}

// TouchesPricing reports whether applying the patch requires the fee
// breakdown to be recomputed: any parcel-detail change or an urgency change.
func (p UpdatePatch) TouchesPricing() bool {
	if p.Details != nil {
		return true
	}
	return p.Delivery != nil && p.Delivery.Urgency != nil
}
