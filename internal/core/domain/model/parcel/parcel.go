package parcel

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not
	// created through NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")
)

// Parcel is the aggregate root of the delivery lifecycle. It owns the status
// state machine, the append-only status history, the fee breakdown, and the
// administrative block and cancellation flags.
//
// Invariants maintained by this type:
//   - the tracking id never changes after creation
//   - the history has at least one entry (seeded at creation) and only grows
//   - the current status always equals the status of the last history entry
//   - a blocked parcel accepts no field mutation or status transition
//   - the total fee is never negative
//
// All mutation goes through the methods below; there is no direct write to
// the status or the history from outside the aggregate.
type Parcel struct {
	id         kernel.UUID
	trackingID TrackingID
	senderID   kernel.UUID
	receiver   Receiver
	details    Details
	delivery   DeliveryInfo
	pricing    Pricing

	status      Status
	history     []HistoryEntry
	isBlocked   bool
	isCancelled bool

	personnelID *kernel.UUID

	createdAt   time.Time
	updatedAt   time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewParcel creates a parcel in the initial REQUESTED status and seeds the
// first history entry, attributed to the sender, in the same construction so
// the history is never observed empty.
//
// Pricing must already be computed for the parcel's attributes; the creation
// workflow validates the fee input and resolves a collision-free tracking id
// before calling this constructor.
func NewParcel(
	id kernel.UUID,
	trackingID TrackingID,
	senderID kernel.UUID,
	receiver Receiver,
	details Details,
	delivery DeliveryInfo,
	pricing Pricing,
) (*Parcel, error) {
	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		senderID.Validate(),
		receiver.Validate(),
		details.Validate(),
		delivery.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}

	sender, err := NewUserActorRef(senderID)
	if err != nil {
		return nil, err
	}
	seed, err := NewHistoryEntry(StatusRequested, sender, "", "Parcel request created")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Parcel{
		id:            id,
		trackingID:    trackingID,
		senderID:      senderID,
		receiver:      receiver,
		details:       details,
		delivery:      delivery,
		pricing:       pricing,
		status:        StatusRequested,
		history:       []HistoryEntry{seed},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreParcel rebuilds a parcel from persistence. The history must be
// non-empty and its last entry must carry the current status; persistence
// that violates this is rejected rather than silently repaired.
func RestoreParcel(
	id kernel.UUID,
	trackingID TrackingID,
	senderID kernel.UUID,
	receiver Receiver,
	details Details,
	delivery DeliveryInfo,
	pricing Pricing,
	status Status,
	history []HistoryEntry,
	isBlocked bool,
	isCancelled bool,
	personnelID *kernel.UUID,
	createdAt time.Time,
	updatedAt time.Time,
	deliveredAt *time.Time,
) (*Parcel, error) {
	if err := errors.Join(
		id.Validate(),
		trackingID.Validate(),
		senderID.Validate(),
		receiver.Validate(),
		details.Validate(),
		delivery.Validate(),
		pricing.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, errs.NewValueIsRequiredError("statusHistory")
	}
	if history[len(history)-1].Status() != status {
		return nil, errs.NewValueIsInvalidErrorWithCause("statusHistory",
			fmt.Errorf("last history entry is %s but current status is %s",
				history[len(history)-1].Status(), status))
	}

	return &Parcel{
		id:            id,
		trackingID:    trackingID,
		senderID:      senderID,
		receiver:      receiver,
		details:       details,
		delivery:      delivery,
		pricing:       pricing,
		status:        status,
		history:       history,
		isBlocked:     isBlocked,
		isCancelled:   isCancelled,
		personnelID:   personnelID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Parcel was created via a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the internal record id.
func (p *Parcel) ID() kernel.UUID { return p.id }

// TrackingID returns the public tracking identifier.
func (p *Parcel) TrackingID() TrackingID { return p.trackingID }

// SenderID returns the id of the sender who created the parcel.
func (p *Parcel) SenderID() kernel.UUID { return p.senderID }

// Receiver returns the embedded receiver snapshot.
func (p *Parcel) Receiver() Receiver { return p.receiver }

// Details returns the physical parcel details.
func (p *Parcel) Details() Details { return p.details }

// Delivery returns the delivery preferences.
func (p *Parcel) Delivery() DeliveryInfo { return p.delivery }

// Pricing returns the current fee breakdown.
func (p *Parcel) Pricing() Pricing { return p.pricing }

// Status returns the authoritative lifecycle pointer.
func (p *Parcel) Status() Status { return p.status }

// History returns a copy of the append-only status history, oldest first.
func (p *Parcel) History() []HistoryEntry {
	history := make([]HistoryEntry, len(p.history))
	copy(history, p.history)
	return history
}

// IsBlocked reports whether the administrative freeze is in effect.
func (p *Parcel) IsBlocked() bool { return p.isBlocked }

// IsCancelled reports whether the parcel reached the cancelled outcome.
func (p *Parcel) IsCancelled() bool { return p.isCancelled }

// Personnel returns the assigned delivery personnel reference, nil when none.
func (p *Parcel) Personnel() *kernel.UUID {
	if p.personnelID == nil {
		return nil
	}
	id := *p.personnelID
	return &id
}

// CreatedAt returns the creation time.
func (p *Parcel) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation time.
func (p *Parcel) UpdatedAt() time.Time { return p.updatedAt }

// DeliveredAt returns when the parcel was delivered, nil before that.
func (p *Parcel) DeliveredAt() *time.Time {
	if p.deliveredAt == nil {
		return nil
	}
	t := *p.deliveredAt
	return &t
}

// ChangeStatus performs a checked lifecycle transition and appends the
// matching history entry in the same in-memory operation.
//
// Rules enforced here:
//   - a blocked parcel rejects every transition
//   - the target must be reachable from the current status in the graph;
//     the error names both statuses
//   - moving to CANCELLED also raises the isCancelled flag
//   - moving to DELIVERED records the delivery time
func (p *Parcel) ChangeStatus(target Status, by ActorRef, location, note string) error {
	if p.isBlocked {
		return errs.NewForbiddenError("parcel is blocked and accepts no status transition")
	}

	newStatus, err := p.status.TransitionTo(target)
	if err != nil {
		return err
	}

	entry, err := NewHistoryEntry(newStatus, by, location, note)
	if err != nil {
		return err
	}

	p.status = newStatus
	p.history = append(p.history, entry)
	p.updatedAt = entry.Timestamp()

	if newStatus == StatusCancelled {
		p.isCancelled = true
	}
	if newStatus == StatusDelivered {
		deliveredAt := entry.Timestamp()
		p.deliveredAt = &deliveredAt
	}
	return nil
}

// Cancel ends the lifecycle from a pre-dispatch status. A second cancellation
// attempt fails loudly instead of succeeding silently.
func (p *Parcel) Cancel(by ActorRef, reason string) error {
	if p.isCancelled {
		return errs.NewValidationFailedError("parcel is already cancelled")
	}
	if reason == "" {
		reason = "Cancelled by sender"
	}
	return p.ChangeStatus(StatusCancelled, by, "", reason)
}

// ConfirmDelivery moves an OUT_FOR_DELIVERY parcel to DELIVERED on behalf of
// the receiver. When the receiver has no account, the note is annotated with
// the confirming email so the audit log preserves who confirmed.
func (p *Parcel) ConfirmDelivery(by ActorRef, note string) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if by.Kind() == ActorKindUnregistered {
		annotation := fmt.Sprintf("confirmed by unregistered receiver %s", by.Email())
		if note == "" {
			note = annotation
		} else {
			note = fmt.Sprintf("%s (%s)", note, annotation)
		}
	} else if note == "" {
		note = "Delivery confirmed by receiver"
	}
	return p.ChangeStatus(StatusDelivered, by, "", note)
}

// ApplyUpdate merges a sender-initiated partial update. Permitted only before
// dispatch (REQUESTED or APPROVED) on a parcel that is neither blocked nor
// cancelled. When the patch touches the weight, any other parcel detail, or
// the urgency, the fee breakdown is recomputed with the existing discount and
// coupon preserved.
func (p *Parcel) ApplyUpdate(patch UpdatePatch) error {
	if p.isBlocked {
		return errs.NewForbiddenError("parcel is blocked and accepts no updates")
	}
	if p.isCancelled {
		return errs.NewValidationFailedError("cancelled parcel cannot be updated")
	}
	if p.status != StatusRequested && p.status != StatusApproved {
		return errs.NewValidationFailedError(
			fmt.Sprintf("parcel in status %s can no longer be edited", p.status))
	}

	receiver, details, delivery := p.receiver, p.details, p.delivery
	var err error

	if patch.Receiver != nil {
		if receiver, err = receiver.merge(*patch.Receiver); err != nil {
			return err
		}
	}
	if patch.Details != nil {
		if details, err = details.merge(*patch.Details); err != nil {
			return err
		}
	}
	if patch.Delivery != nil {
		if delivery, err = delivery.merge(*patch.Delivery); err != nil {
			return err
		}
	}

	pricing := p.pricing
	if patch.TouchesPricing() {
		if err = ValidateFeeInput(details.WeightKg(), delivery.Urgency()); err != nil {
			return err
		}
		pricing, err = ComputePricing(
			details.WeightKg(), delivery.Urgency(), p.pricing.Discount(), p.pricing.CouponCode())
		if err != nil {
			return err
		}
	}

	p.receiver = receiver
	p.details = details
	p.delivery = delivery
	p.pricing = pricing
	p.updatedAt = time.Now().UTC()
	return nil
}

// SetBlocked raises or clears the administrative freeze. The action is
// unconditional with respect to the lifecycle: it neither checks nor changes
// the current status, and it documents itself with a history entry carrying
// the status the parcel already holds.
func (p *Parcel) SetBlocked(blocked bool, by ActorRef, reason string) error {
	if reason == "" {
		if blocked {
			reason = "Parcel blocked by admin"
		} else {
			reason = "Parcel unblocked by admin"
		}
	}

	entry, err := NewHistoryEntry(p.status, by, "", reason)
	if err != nil {
		return err
	}

	p.isBlocked = blocked
	p.history = append(p.history, entry)
	p.updatedAt = entry.Timestamp()
	return nil
}

// AssignPersonnel stores the delivery personnel reference. The assignment is
// independent of the status machine; caller-side authorization restricts it
// to admins and verifies the referenced person exists.
func (p *Parcel) AssignPersonnel(personnelID kernel.UUID) error {
	if p.isBlocked {
		return errs.NewForbiddenError("parcel is blocked and accepts no updates")
	}
	if err := personnelID.Validate(); err != nil {
		return err
	}
	p.personnelID = &personnelID
	p.updatedAt = time.Now().UTC()
	return nil
}
