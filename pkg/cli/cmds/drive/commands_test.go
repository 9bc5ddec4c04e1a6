package drive

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vescdrive/pkg/drive/msgs"
	"github.com/robotalks/vescdrive/pkg/vesc"
)

func TestParseTank(t *testing.T) {
	msg, err := parseTank([]string{"0.5", "-0.25"})
	require.NoError(t, err)
	require.Equal(t, &msgs.TankDrive{Left: 0.5, Right: -0.25}, msg)

	msg, err = parseTank([]string{"0.3"})
	require.NoError(t, err)
	require.Equal(t, msg.Left, msg.Right)

	_, err = parseTank(nil)
	require.ErrorIs(t, err, ErrUsage)
	_, err = parseTank([]string{"fast"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestParseMotorSet(t *testing.T) {
	msg, err := parseMotorSet([]string{"74", "duty", "0.25"})
	require.NoError(t, err)
	require.Equal(t, &msgs.MotorSet{MotorId: 74, Command: "duty_cycle", Value: 0.25}, msg)

	_, err = parseMotorSet([]string{"256", "rpm", "1"})
	require.ErrorIs(t, err, ErrUsage)
	_, err = parseMotorSet([]string{"1", "spin", "1"})
	require.ErrorIs(t, err, vesc.ErrUnknownCommand)
}

func TestFrameCommands(t *testing.T) {
	out, err := uartFrame([]string{"rpm", "1"})
	require.NoError(t, err)
	require.Equal(t, "02050800000001120c03", out)

	out, err = canFrame([]string{"74", "duty", "0.25"})
	require.NoError(t, err)
	require.Equal(t, "0000004a#61 a8", out)

	_, err = uartFrame([]string{"rpm", "1e12"})
	require.ErrorIs(t, err, vesc.ErrPayloadOverflow)
}

func TestDecodeFrames(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		out  []string
	}{
		{"single", []string{"02050800000001120c03"}, []string{"rpm(1) = 1"}},
		{"split args", []string{"0205080000", "0001120c03"}, []string{"rpm(1) = 1"}},
		{"bad crc", []string{"02050800000001120d03"}, []string{"error: checksum mismatch"}},
		{"incomplete", []string{"0205"}, []string{"incomplete frame"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := decodeFrames(tc.args)
			require.NoError(t, err)
			require.Len(t, out, len(tc.out))
			for n, prefix := range tc.out {
				require.True(t, strings.HasPrefix(out[n], prefix), out[n])
			}
		})
	}
	_, err := decodeFrames([]string{"zz"})
	require.ErrorIs(t, err, ErrUsage)
}

func TestMonitorDuration(t *testing.T) {
	d, err := monitorDuration(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultMonitorDuration, d)
	d, err = monitorDuration([]string{"2s"})
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, d)
}
