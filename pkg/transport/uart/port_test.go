package uart

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vescdrive/pkg/vesc"
)

type fakeStream struct {
	reader io.Reader
	writes bytes.Buffer
	short  bool
	closed bool
}

func (s *fakeStream) Read(p []byte) (int, error) { return s.reader.Read(p) }

func (s *fakeStream) Write(p []byte) (int, error) {
	if s.short {
		return len(p) - 1, nil
	}
	return s.writes.Write(p)
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestWriteUART(t *testing.T) {
	stream := &fakeStream{reader: &bytes.Buffer{}}
	motor := vesc.UARTMotor{Port: New("test", stream)}
	require.NoError(t, motor.SetRpm(1))
	require.NoError(t, motor.SetDutyCycle(128e-5))
	require.Equal(t, "02050800000001120c03"+"02050500000080b2df03", hex.EncodeToString(stream.writes.Bytes()))

	stream.short = true
	require.ErrorIs(t, motor.SetRpm(2), ErrIncompleteWrite)
}

func TestReadFrames(t *testing.T) {
	stream := &fakeStream{reader: bytes.NewReader(mustHex(t,
		"00"+"02050800000002226f03"+"02050800000002226e03"+"020505fffffffc8afb03"))}
	var msgs []vesc.Message
	var errs []error
	err := New("test", stream).ReadFrames(context.Background(), func(pr vesc.ParseResult) {
		if pr.Message != nil {
			msgs = append(msgs, *pr.Message)
		} else {
			errs = append(errs, pr.Err)
		}
	})
	require.True(t, errors.Is(err, io.EOF))
	require.True(t, stream.closed)
	require.Equal(t, []vesc.Message{
		vesc.RawMessage(vesc.SetRpm, 2),
		vesc.RawMessage(vesc.SetDutyCycle, -4),
	}, msgs)
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], vesc.ErrChecksumMismatch)
}
