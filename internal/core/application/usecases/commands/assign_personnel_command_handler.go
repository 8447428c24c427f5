package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/parcel"
)

// AssignPersonnelCommandHandler handles delivery personnel assignment.
// The referenced person must exist as an account; the aggregate simply
// stores the reference.
type AssignPersonnelCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignPersonnelCommandHandler creates a handler for personnel assignment.
func NewAssignPersonnelCommandHandler(uowFactory UoWFactory) AssignPersonnelCommandHandler {
	return AssignPersonnelCommandHandler{uowFactory: uowFactory}
}

// Handle processes the assignment and returns the updated parcel.
func (h *AssignPersonnelCommandHandler) Handle(
	ctx context.Context, cmd AssignPersonnelCommand,
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

	// The referenced personnel must be an existing account.
	if _, err = uow.UserRepository().Get(ctx, cmd.PersonnelID()); err != nil {
		return nil, err
	}

	aggregate, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	statusAtRead := aggregate.Status()
	if err = aggregate.AssignPersonnel(cmd.PersonnelID()); err != nil {
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
