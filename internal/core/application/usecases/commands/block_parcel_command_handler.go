package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/parcel"
)

// BlockParcelCommandHandler handles the administrative block/unblock action.
// Blocking is unconditional with respect to the lifecycle; the parcel keeps
// whatever status it had, and a history entry documents the action.
type BlockParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewBlockParcelCommandHandler creates a handler for the block action.
func NewBlockParcelCommandHandler(uowFactory UoWFactory) BlockParcelCommandHandler {
	return BlockParcelCommandHandler{uowFactory: uowFactory}
}

// Handle processes the flag change and returns the updated parcel.
func (h *BlockParcelCommandHandler) Handle(
	ctx context.Context, cmd BlockParcelCommand,
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
	if err = aggregate.SetBlocked(cmd.Blocked(), actorRef, cmd.Reason()); err != nil {
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
