package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/parcel"
)

// UpdateParcelStatusCommandHandler handles admin-driven status transitions.
// The route guard already restricts the endpoint to admins; the handler
// re-checks the role and the actor's block state against the store, and the
// aggregate enforces transition legality and the parcel's own block freeze.
type UpdateParcelStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateParcelStatusCommandHandler creates a handler for status transitions.
func NewUpdateParcelStatusCommandHandler(uowFactory UoWFactory) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{uowFactory: uowFactory}
}

// Handle processes the transition and returns the updated parcel.
// The history append and the status write land in one transaction, and the
// write is conditional on the status read here, so two admins racing the
// same parcel produce one success and one Conflict.
func (h *UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateParcelStatusCommand,
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
	if err = requireRole(actor, account.RoleAdmin); err != nil {
		return nil, err
	}

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	actorRef, err := parcel.NewUserActorRef(actor.ID())
	if err != nil {
		return nil, err
	}

	statusAtRead := aggregate.Status()
	if err = aggregate.ChangeStatus(cmd.Target(), actorRef, cmd.Location(), cmd.Note()); err != nil {
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
