package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignPersonnelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	admin := testAdmin()
	personnel, _ := account.NewUser(
		kernel.NewUUID(), "Pat Porter", "pat@example.com", account.RoleReceiver)
	aggregate := newTestParcel(kernel.NewUUID())
	advanceTestParcel(aggregate, parcel.StatusApproved)

	cmd, err := commands.NewAssignPersonnelCommand(
		testPrincipal(admin), aggregate.ID(), personnel.ID())
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, personnel.ID()).Return(personnel, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Update", ctx, aggregate, parcel.StatusApproved).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPersonnelCommandHandler(factory)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated.Personnel())
	assert.True(t, personnel.ID().IsEqual(*updated.Personnel()))
	parcelRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignPersonnelCommandHandler_Handle_InvalidCommand(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignPersonnelCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewAssignPersonnelCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignPersonnelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignPersonnelCommandHandler_Handle_PersonnelDoesNotExist(t *testing.T) {
	ctx := t.Context()
	admin := testAdmin()
	personnelID := kernel.NewUUID()
	cmd, _ := commands.NewAssignPersonnelCommand(
		testPrincipal(admin), kernel.NewUUID(), personnelID)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, personnelID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPersonnelCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "ParcelRepository")
}

func TestAssignPersonnelCommandHandler_Handle_RequiresAdminRole(t *testing.T) {
	ctx := t.Context()
	sender := testSender()
	cmd, _ := commands.NewAssignPersonnelCommand(
		testPrincipal(sender), kernel.NewUUID(), kernel.NewUUID())

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, sender.ID()).Return(sender, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPersonnelCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertNotCalled(t, "ParcelRepository")
}

func TestAssignPersonnelCommandHandler_Handle_BlockedParcel(t *testing.T) {
	ctx := t.Context()
	admin := testAdmin()
	personnel, _ := account.NewUser(
		kernel.NewUUID(), "Pat Porter", "pat@example.com", account.RoleReceiver)
	aggregate := newTestParcel(kernel.NewUUID())
	adminRef, _ := parcel.NewUserActorRef(admin.ID())
	require.NoError(t, aggregate.SetBlocked(true, adminRef, "hold"))

	cmd, _ := commands.NewAssignPersonnelCommand(
		testPrincipal(admin), aggregate.ID(), personnel.ID())

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, personnel.ID()).Return(personnel, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPersonnelCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, aggregate.Personnel())
	parcelRepo.AssertNotCalled(t, "Update")
}
