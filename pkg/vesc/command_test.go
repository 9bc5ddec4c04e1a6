package vesc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandTable(t *testing.T) {
	testCases := []struct {
		cmd   CommandType
		id    byte
		scale float64
		name  string
	}{
		{SetDutyCycle, 0x00, 100000, "duty_cycle"},
		{SetCurrent, 0x01, 1000, "current"},
		{SetCurrentBrake, 0x02, 1000, "current_brake"},
		{SetRpm, 0x03, 1, "rpm"},
		{SetPosition, 0x04, 1000000, "position"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.id, tc.cmd.ID())
			require.Equal(t, tc.scale, tc.cmd.Scale())
			require.Equal(t, tc.name, tc.cmd.String())
			cmd, ok := CommandFromID(tc.id)
			require.True(t, ok)
			require.Equal(t, tc.cmd, cmd)
			cmd, err := ParseCommand(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.cmd, cmd)
		})
	}
	require.Len(t, Commands(), len(testCases))
}

func TestCommandLookupFailures(t *testing.T) {
	_, ok := CommandFromID(0x05)
	require.False(t, ok)
	_, err := ParseCommand("reboot")
	require.ErrorIs(t, err, ErrUnknownCommand)
	cmd, err := ParseCommand(" Duty ")
	require.NoError(t, err)
	require.Equal(t, SetDutyCycle, cmd)
	require.Equal(t, "command(9)", CommandType(9).String())
	require.Panics(t, func() { CommandType(9).ID() })
}
