package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignPersonnelCommand_ValidInput(t *testing.T) {
	admin := testAdmin()
	parcelID := kernel.NewUUID()
	personnelID := kernel.NewUUID()

	cmd, err := commands.NewAssignPersonnelCommand(testPrincipal(admin), parcelID, personnelID)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, personnelID, cmd.PersonnelID())
}

func TestNewAssignPersonnelCommand_InvalidPersonnelID(t *testing.T) {
	admin := testAdmin()

	_, err := commands.NewAssignPersonnelCommand(
		testPrincipal(admin), kernel.NewUUID(), kernel.UUID{})

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAssignPersonnelCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.AssignPersonnelCommand // zero-value command

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrAssignPersonnelCommandIsNotConstructed, err)
}
