package vesc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type canRecord struct {
	id   uint32
	data []byte
}

type fakeBus struct {
	frames []canRecord
	err    error
}

func (b *fakeBus) WriteCAN(id uint32, data []byte) error {
	if b.err != nil {
		return b.err
	}
	b.frames = append(b.frames, canRecord{id: id, data: append([]byte(nil), data...)})
	return nil
}

type fakePort struct {
	frames [][]byte
}

func (p *fakePort) WriteUART(frame []byte) error {
	p.frames = append(p.frames, frame)
	return nil
}

func TestMotor(t *testing.T) {
	testCases := []struct {
		name string
		send func(Motor) error
		id   uint32
		data []byte
	}{
		{"duty", func(m Motor) error { return m.SetDutyCycle(0.5) }, 0x002a, []byte{0xc3, 0x50}},
		{"current", func(m Motor) error { return m.SetCurrent(2) }, 0x012a, []byte{0x07, 0xd0}},
		{"brake", func(m Motor) error { return m.SetCurrentBrake(1) }, 0x022a, []byte{0x03, 0xe8}},
		{"rpm", func(m Motor) error { return m.SetRpm(1) }, 0x032a, []byte{0x01}},
		{"position", func(m Motor) error { return m.SetPosition(-1.5) }, 0x042a, []byte{0xff, 0xe9, 0x1c, 0xa0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bus := &fakeBus{}
			require.NoError(t, tc.send(Motor{ID: 42, Bus: bus}))
			require.Equal(t, []canRecord{{id: tc.id, data: tc.data}}, bus.frames)
		})
	}
}

func TestMotorErrors(t *testing.T) {
	bus := &fakeBus{}
	err := Motor{ID: 7, Bus: bus}.SetRpm(math.Inf(1))
	var me *MotorError
	require.ErrorAs(t, err, &me)
	require.Equal(t, uint8(7), me.MotorID)
	require.Equal(t, SetRpm, me.Command)
	require.ErrorIs(t, err, ErrPayloadOverflow)
	require.Empty(t, bus.frames)

	bus.err = errors.New("bus off")
	err = Motor{ID: 8, Bus: bus}.SetCurrent(1)
	require.ErrorIs(t, err, bus.err)
	require.EqualError(t, err, "motor 8 current: bus off")
}

func TestUARTMotor(t *testing.T) {
	port := &fakePort{}
	m := UARTMotor{Port: port}
	require.NoError(t, m.SetRpm(1))
	require.NoError(t, m.SetDutyCycle(0))
	require.NoError(t, m.SetCurrent(-2.5))
	require.NoError(t, m.SetCurrentBrake(1))
	require.NoError(t, m.SetPosition(-1.5))
	require.Len(t, port.frames, 5)
	require.Equal(t, mustHex(t, "02050800000001120c03"), port.frames[0])
	require.Equal(t, mustHex(t, "02050500000000235703"), port.frames[1])
	require.Equal(t, mustHex(t, "020509ffe91ca02e8b03"), port.frames[4])
	require.ErrorIs(t, m.SetDutyCycle(math.NaN()), ErrPayloadOverflow)
}
