package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// CancelParcelCommandHandler handles sender-initiated cancellation.
// Cancellation is only reachable from REQUESTED or APPROVED through the
// lifecycle graph; a second attempt on an already cancelled parcel fails
// loudly rather than succeeding silently.
type CancelParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelParcelCommandHandler creates a handler for parcel cancellation.
func NewCancelParcelCommandHandler(uowFactory UoWFactory) CancelParcelCommandHandler {
	return CancelParcelCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation and returns the cancelled parcel.
func (h *CancelParcelCommandHandler) Handle(
	ctx context.Context, cmd CancelParcelCommand,
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
		return nil, errs.NewForbiddenError("only the parcel's sender may cancel it")
	}

	actorRef, err := parcel.NewUserActorRef(actor.ID())
	if err != nil {
		return nil, err
	}

	statusAtRead := aggregate.Status()
	if err = aggregate.Cancel(actorRef, cmd.Reason()); err != nil {
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
