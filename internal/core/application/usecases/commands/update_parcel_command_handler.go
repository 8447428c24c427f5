package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// UpdateParcelCommandHandler handles sender-initiated partial updates.
// Only the parcel's own sender may edit it, only before dispatch, and a
// pricing-affecting change recomputes the fee breakdown with the existing
// discount and coupon preserved.
type UpdateParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateParcelCommandHandler creates a handler for parcel updates.
func NewUpdateParcelCommandHandler(uowFactory UoWFactory) UpdateParcelCommandHandler {
	return UpdateParcelCommandHandler{uowFactory: uowFactory}
}

// Handle processes the update command and returns the updated parcel.
// The write is conditional on the status read in this transaction, so a
// concurrent transition surfaces as a Conflict instead of a lost update.
func (h *UpdateParcelCommandHandler) Handle(
	ctx context.Context, cmd UpdateParcelCommand,
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

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	if !aggregate.SenderID().IsEqual(actor.ID()) {
		return nil, errs.NewForbiddenError("only the parcel's sender may update it")
	}

	statusAtRead := aggregate.Status()
	if err = aggregate.ApplyUpdate(cmd.Patch()); err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Update(ctx, aggregate, statusAtRead); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return aggregate, nil
}
