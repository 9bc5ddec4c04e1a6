package vesc

import (
	"testing"

	"github.com/sigurn/crc16"
	"github.com/stretchr/testify/require"
)

func TestCRC16(t *testing.T) {
	require.Equal(t, uint16(0xbf1a), CRC16([]byte("123456789")))

	xmodem := crc16.MakeTable(crc16.CRC16_XMODEM)
	testCases := []struct {
		name    string
		head    []byte
		payload []byte
	}{
		{"rpm 1", []byte{0x02, 0x05}, []byte{0x08, 0x00, 0x00, 0x00, 0x01}},
		{"duty -4", []byte{0x02, 0x05}, []byte{0x05, 0xff, 0xff, 0xff, 0xfc}},
		{"position", []byte{0x02, 0x05}, []byte{0x09, 0xff, 0xe9, 0x1c, 0xa0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := append(append([]byte{}, tc.head...), tc.payload...)
			require.Equal(t, crc16.Checksum(tc.payload, xmodem), CRC16(data))
		})
	}
}
