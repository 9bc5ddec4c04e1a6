package vesc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCAN(t *testing.T) {
	testCases := []struct {
		name    string
		cmd     CommandType
		payload int32
		target  uint8
		id      uint32
		data    []byte
	}{
		{"rpm 1", SetRpm, 1, 12, 0x030c, []byte{0x01}},
		{"zero keeps one byte", SetDutyCycle, 0, 63, 0x003f, []byte{0x00}},
		{"two bytes", SetDutyCycle, 50000, 74, 0x004a, []byte{0xc3, 0x50}},
		{"three bytes", SetRpm, 0x010000, 4, 0x0304, []byte{0x01, 0x00, 0x00}},
		{"inner zero kept", SetCurrent, 0x0100, 87, 0x0157, []byte{0x01, 0x00}},
		{"max", SetRpm, math.MaxInt32, 255, 0x03ff, []byte{0x7f, 0xff, 0xff, 0xff}},
		{"negative", SetCurrentBrake, -1, 1, 0x0201, []byte{0xff, 0xff, 0xff, 0xff}},
		{"position", SetPosition, -1500000, 0, 0x0400, []byte{0xff, 0xe9, 0x1c, 0xa0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := RawMessage(tc.cmd, tc.payload).To(tc.target)
			f, err := EncodeCAN(m)
			require.NoError(t, err)
			require.Equal(t, tc.id, f.ID)
			require.Equal(t, tc.data, f.Data)

			decoded, err := DecodeCAN(f)
			require.NoError(t, err)
			require.Equal(t, m, decoded)
		})
	}
}

func TestEncodeCANMissingTarget(t *testing.T) {
	_, err := EncodeCAN(RawMessage(SetRpm, 1))
	require.ErrorIs(t, err, ErrMissingTargetID)
}

func TestDecodeCANErrors(t *testing.T) {
	testCases := []struct {
		name  string
		frame CANFrame
		err   error
	}{
		{"empty", CANFrame{ID: 0x0301}, ErrMalformedFrame},
		{"too long", CANFrame{ID: 0x0301, Data: make([]byte, 5)}, ErrMalformedFrame},
		{"wide id", CANFrame{ID: 0x10301, Data: []byte{1}}, ErrMalformedFrame},
		{"unknown", CANFrame{ID: 0x0901, Data: []byte{1}}, ErrUnknownCommand},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeCAN(tc.frame)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCANFrameString(t *testing.T) {
	require.Equal(t, "0000030c#01", CANFrame{ID: 0x030c, Data: []byte{1}}.String())
}
