package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateParcelCommand_ValidInput(t *testing.T) {
	sender := testSender()
	payload := testPayload()

	cmd, err := commands.NewCreateParcelCommand(testPrincipal(sender), payload)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, sender.ID(), cmd.Principal().UserID())
	assert.Equal(t, payload, cmd.Payload())
}

func TestNewCreateParcelCommand_InvalidPrincipal(t *testing.T) {
	_, err := commands.NewCreateParcelCommand(account.Principal{}, testPayload())

	require.Error(t, err)
	require.ErrorIs(t, err, account.ErrPrincipalIsNotConstructed)
}

func TestCreateParcelCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.CreateParcelCommand // zero-value command

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrCreateParcelCommandIsNotConstructed, err)
}
