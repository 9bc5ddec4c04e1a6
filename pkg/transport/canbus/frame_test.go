package canbus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vescdrive/pkg/vesc"
)

func TestMarshalFrame(t *testing.T) {
	f, err := vesc.EncodeCAN(vesc.RawMessage(vesc.SetRpm, 1).To(12))
	require.NoError(t, err)
	buf, err := marshalFrame(f.ID, f.Data)
	require.NoError(t, err)
	require.Equal(t, [frameSize]byte{
		0x0c, 0x03, 0x00, 0x80, // id 0x030c | EFF, little endian
		0x01, 0, 0, 0, // dlc, pad
		0x01, 0, 0, 0, 0, 0, 0, 0,
	}, buf)

	id, data, extended, err := unmarshalFrame(buf[:])
	require.NoError(t, err)
	require.True(t, extended)
	require.Equal(t, f.ID, id)
	require.Equal(t, f.Data, data)
}

func TestMarshalFrameInvalid(t *testing.T) {
	_, err := marshalFrame(0x20000000, nil)
	require.ErrorIs(t, err, ErrInvalidFrame)
	_, err = marshalFrame(1, make([]byte, 9))
	require.ErrorIs(t, err, ErrInvalidFrame)
	_, _, _, err = unmarshalFrame(make([]byte, 8))
	require.ErrorIs(t, err, ErrInvalidFrame)
}

func TestUnmarshalStandardFrame(t *testing.T) {
	buf := []byte{0x23, 0x01, 0, 0, 2, 0, 0, 0, 0xaa, 0xbb, 0, 0, 0, 0, 0, 0}
	id, data, extended, err := unmarshalFrame(buf)
	require.NoError(t, err)
	require.False(t, extended)
	require.Equal(t, uint32(0x123), id)
	require.Equal(t, []byte{0xaa, 0xbb}, data)
}
