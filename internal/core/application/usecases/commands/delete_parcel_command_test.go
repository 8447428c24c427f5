package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeleteParcelCommand_ValidInput(t *testing.T) {
	admin := testAdmin()
	parcelID := kernel.NewUUID()

	cmd, err := commands.NewDeleteParcelCommand(testPrincipal(admin), parcelID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, admin.ID(), cmd.Principal().UserID())
}

func TestNewDeleteParcelCommand_InvalidParcelID(t *testing.T) {
	admin := testAdmin()

	_, err := commands.NewDeleteParcelCommand(testPrincipal(admin), kernel.UUID{})

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestDeleteParcelCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.DeleteParcelCommand // zero-value command

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrDeleteParcelCommandIsNotConstructed, err)
}
