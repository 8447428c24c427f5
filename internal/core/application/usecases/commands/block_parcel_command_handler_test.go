package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlockParcelCommandHandler_Handle_Block(t *testing.T) {
	ctx := t.Context()
	admin := testAdmin()
	aggregate := newTestParcel(kernel.NewUUID())
	advanceTestParcel(aggregate, parcel.StatusApproved)
	cmd, err := commands.NewBlockParcelCommand(
		testPrincipal(admin), aggregate.ID(), true, "suspicious contents")
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Update", ctx, aggregate, parcel.StatusApproved).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewBlockParcelCommandHandler(factory)
	blocked, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked())
	// blocking freezes the parcel but never moves the status machine
	assert.Equal(t, parcel.StatusApproved, blocked.Status())
	require.Len(t, blocked.History(), 3)
	last := blocked.History()[2]
	assert.Equal(t, parcel.StatusApproved, last.Status())
	assert.Equal(t, "suspicious contents", last.Note())
	parcelRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestBlockParcelCommandHandler_Handle_Unblock(t *testing.T) {
	ctx := t.Context()
	admin := testAdmin()
	aggregate := newTestParcel(kernel.NewUUID())
	adminRef, _ := parcel.NewUserActorRef(admin.ID())
	require.NoError(t, aggregate.SetBlocked(true, adminRef, "hold"))

	cmd, _ := commands.NewBlockParcelCommand(testPrincipal(admin), aggregate.ID(), false, "")

	parcelRepo := new(MockParcelRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, admin.ID()).Return(admin, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Update", ctx, aggregate, parcel.StatusRequested).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewBlockParcelCommandHandler(factory)
	unblocked, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked())
	last := unblocked.History()[len(unblocked.History())-1]
	assert.Equal(t, "Parcel unblocked by admin", last.Note())
}

func TestBlockParcelCommandHandler_Handle_InvalidCommand(t *testing.T) {
	ctx := t.Context()
	cmd := commands.BlockParcelCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewBlockParcelCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrBlockParcelCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestBlockParcelCommandHandler_Handle_RequiresAdminRole(t *testing.T) {
	ctx := t.Context()
	sender := testSender()
	cmd, _ := commands.NewBlockParcelCommand(
		testPrincipal(sender), kernel.NewUUID(), true, "")

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

	handler := commands.NewBlockParcelCommandHandler(factory)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertNotCalled(t, "ParcelRepository")
}
