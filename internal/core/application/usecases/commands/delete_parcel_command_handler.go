package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
)

// DeleteParcelCommandHandler handles the admin hard delete.
type DeleteParcelCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteParcelCommandHandler creates a handler for parcel deletion.
func NewDeleteParcelCommandHandler(uowFactory UoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the parcel and its history.
// Returns a NotFound error when no parcel has the id.
func (h *DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := resolveActor(ctx, uow.UserRepository(), cmd.Principal())
	if err != nil {
		return err
	}
	if err = requireRole(actor, account.RoleAdmin); err != nil {
		return err
	}

	if err = uow.ParcelRepository().Delete(ctx, cmd.ParcelID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
