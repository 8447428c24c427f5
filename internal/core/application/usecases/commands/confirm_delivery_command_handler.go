package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler handles the receiver's delivery confirmation.
// The confirming email must equal the parcel's receiver email. Whether the
// receiver is a registered user decides how the history entry is attributed:
// a user reference when an account exists for the email, otherwise the
// unregistered-receiver variant carrying the email itself.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(uowFactory UoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle processes the confirmation and returns the delivered parcel.
func (h *ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context, cmd ConfirmDeliveryCommand,
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

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	if aggregate.Receiver().Email() != cmd.ReceiverEmail() {
		return nil, errs.NewForbiddenError("only the parcel's receiver may confirm delivery")
	}

	actorRef, err := h.resolveReceiverRef(ctx, cmd.ReceiverEmail(), uow)
	if err != nil {
		return nil, err
	}

	statusAtRead := aggregate.Status()
	if err = aggregate.ConfirmDelivery(actorRef, cmd.Note()); err != nil {
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

// resolveReceiverRef looks the confirming email up among registered accounts
// and falls back to the unregistered variant when no account exists.
func (h *ConfirmDeliveryCommandHandler) resolveReceiverRef(
	ctx context.Context, email string, uow UoW,
) (parcel.ActorRef, error) {
	user, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return parcel.NewUnregisteredActorRef(email)
		}
		return parcel.ActorRef{}, err
	}
	return parcel.NewUserActorRef(user.ID())
}
