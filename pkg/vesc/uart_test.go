package vesc

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestEncodeUART(t *testing.T) {
	testCases := []struct {
		name  string
		cmd   CommandType
		value float64
		frame string
	}{
		{"rpm 1", SetRpm, 1, "02050800000001120c03"},
		{"rpm 2", SetRpm, 2, "02050800000002226f03"},
		{"rpm 1235", SetRpm, 1234.5, "020508000004d335f703"},
		{"rpm -1", SetRpm, -1, "020508ffffffff9be203"},
		{"duty 0", SetDutyCycle, 0, "02050500000000235703"},
		{"duty 128e-5", SetDutyCycle, 128e-5, "02050500000080b2df03"},
		{"duty -4e-5", SetDutyCycle, -4e-5, "020505fffffffc8afb03"},
		{"duty 0.5", SetDutyCycle, 0.5, "0205050000c3503aa503"},
		{"current -2.5", SetCurrent, -2.5, "020506fffff63c07fd03"},
		{"brake 1", SetCurrentBrake, 1, "020507000003e84ea103"},
		{"position -1.5", SetPosition, -1.5, "020509ffe91ca02e8b03"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMessage(tc.cmd, tc.value)
			require.NoError(t, err)
			frame := EncodeUART(m)
			require.Equal(t, tc.frame, hex.EncodeToString(frame))
			require.Equal(t, frame, EncodeUART(m.To(99)))

			decoded, err := DecodeUART(frame)
			require.NoError(t, err)
			require.Equal(t, m, decoded)
		})
	}
}

func TestAppendUART(t *testing.T) {
	buf := AppendUART([]byte{0xaa}, RawMessage(SetRpm, 1))
	require.Equal(t, "aa02050800000001120c03", hex.EncodeToString(buf))
}

func TestDecodeUARTErrors(t *testing.T) {
	testCases := []struct {
		name  string
		frame string
		err   error
	}{
		{"short", "020508000000011203", ErrMalformedFrame},
		{"bad start", "01050800000001120c03", ErrMalformedFrame},
		{"bad length", "02060800000001120c03", ErrMalformedFrame},
		{"bad end", "02050800000001120c04", ErrMalformedFrame},
		{"bad crc", "02050800000001120d03", ErrChecksumMismatch},
		{"corrupt payload", "02050800000003120c03", ErrChecksumMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeUART(mustHex(t, tc.frame))
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDecodeUARTUnknownCommand(t *testing.T) {
	frame := []byte{0x02, 0x05, 0x0a, 0x00, 0x00, 0x00, 0x01, 0, 0, 0x03}
	sum := CRC16(frame[:7])
	frame[7], frame[8] = byte(sum>>8), byte(sum)
	_, err := DecodeUART(frame)
	require.ErrorIs(t, err, ErrUnknownCommand)
}
