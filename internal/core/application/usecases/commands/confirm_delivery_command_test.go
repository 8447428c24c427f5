package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmDeliveryCommand_ValidInput(t *testing.T) {
	parcelID := kernel.NewUUID()

	cmd, err := commands.NewConfirmDeliveryCommand("jane@example.com", parcelID, "left at door")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "jane@example.com", cmd.ReceiverEmail())
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, "left at door", cmd.Note())
}

func TestNewConfirmDeliveryCommand_EmptyEmail(t *testing.T) {
	_, err := commands.NewConfirmDeliveryCommand("", kernel.NewUUID(), "")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewConfirmDeliveryCommand_InvalidParcelID(t *testing.T) {
	_, err := commands.NewConfirmDeliveryCommand("jane@example.com", kernel.UUID{}, "")

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestConfirmDeliveryCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.ConfirmDeliveryCommand // zero-value command

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrConfirmDeliveryCommandIsNotConstructed, err)
}
