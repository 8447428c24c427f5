package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// trackingIDMaxAttempts bounds the collision-regenerate loop. The id space is
// 9x10^5 per day, so exhausting the bound means something is wrong with the
// store, not bad luck.
const trackingIDMaxAttempts = 10

// CreateParcelCommandHandler handles the business logic for parcel creation:
// sender authorization, fee validation and computation, tracking id
// resolution, and the atomic persist of the parcel with its seeded history.
type CreateParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateParcelCommandHandler creates a handler for parcel creation.
func NewCreateParcelCommandHandler(uowFactory UoWFactory) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{uowFactory: uowFactory}
}

// Handle processes the creation command and returns the persisted parcel.
//
// The fee input is validated before any pricing is computed so the caller
// receives every violation at once. The tracking id protocol generates a
// candidate, checks the store, and regenerates on collision up to the bound;
// uniqueness is ultimately guaranteed by the store's unique index.
func (h *CreateParcelCommandHandler) Handle(
	ctx context.Context, cmd CreateParcelCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := resolveActor(ctx, uow.UserRepository(), cmd.Principal())
	if err != nil {
		return nil, err
	}
	if err = requireRole(actor, account.RoleSender); err != nil {
		return nil, err
	}

	payload := cmd.Payload()

	receiver, err := parcel.NewReceiver(
		payload.ReceiverName, payload.ReceiverEmail, payload.ReceiverPhone, payload.ReceiverAddress)
	if err != nil {
		return nil, err
	}
	details, err := parcel.NewDetails(
		parcel.ParcelType(payload.ParcelType), payload.WeightKg,
		payload.Dimensions, payload.Description, payload.DeclaredValue)
	if err != nil {
		return nil, err
	}
	urgency := parcel.Urgency(payload.Urgency)
	delivery, err := parcel.NewDeliveryInfo(
		payload.PreferredDeliveryDate, payload.DeliveryInstructions, urgency)
	if err != nil {
		return nil, err
	}

	if err = parcel.ValidateFeeInput(details.WeightKg(), urgency); err != nil {
		return nil, err
	}
	pricing, err := parcel.ComputePricing(
		details.WeightKg(), urgency, payload.Discount, payload.CouponCode)
	if err != nil {
		return nil, err
	}

	trackingID, err := resolveTrackingID(ctx, uow.ParcelRepository())
	if err != nil {
		return nil, err
	}

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(), trackingID, actor.ID(), receiver, details, delivery, pricing)
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}

// resolveTrackingID runs the generate-check-regenerate protocol against the
// store within the creation transaction.
func resolveTrackingID(ctx context.Context, parcels ports.ParcelRepository) (parcel.TrackingID, error) {
	for attempt := 0; attempt < trackingIDMaxAttempts; attempt++ {
		candidate := parcel.GenerateTrackingID()
		if err := candidate.Validate(); err != nil {
			return parcel.TrackingID{}, err
		}

		exists, err := parcels.ExistsByTrackingID(ctx, candidate)
		if err != nil {
			return parcel.TrackingID{}, err
		}
		if !exists {
			return candidate, nil
		}
	}
	return parcel.TrackingID{}, errs.NewInternalError("tracking id generation exhausted retries")
}
