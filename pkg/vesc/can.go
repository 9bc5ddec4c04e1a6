package vesc

import (
	"encoding/binary"
	"fmt"
)

// CANFrame is an extended CAN frame.
type CANFrame struct {
	ID   uint32
	Data []byte
}

// String implements fmt.Stringer.
func (f CANFrame) String() string {
	return fmt.Sprintf("%08x#% x", f.ID, f.Data)
}

// EncodeCAN serializes m into a CAN frame. m must carry a target.
func EncodeCAN(m Message) (CANFrame, error) {
	target, ok := m.Target()
	if !ok {
		return CANFrame{}, fmt.Errorf("%w: %s", ErrMissingTargetID, m.command)
	}
	data := binary.BigEndian.AppendUint32(make([]byte, 0, 4), uint32(m.payload))
	for len(data) > 1 && data[0] == 0 {
		data = data[1:]
	}
	return CANFrame{
		ID:   uint32(m.command.ID())<<8 | uint32(target),
		Data: data,
	}, nil
}

// DecodeCAN parses a frame produced by EncodeCAN. The payload is
// zero-extended to 32 bits.
func DecodeCAN(f CANFrame) (Message, error) {
	if f.ID > 0xffff || len(f.Data) == 0 || len(f.Data) > 4 {
		return Message{}, fmt.Errorf("%w: %s", ErrMalformedFrame, f)
	}
	cmd, ok := CommandFromID(byte(f.ID >> 8))
	if !ok {
		return Message{}, fmt.Errorf("%w: can id 0x%04x", ErrUnknownCommand, f.ID)
	}
	var payload uint32
	for _, b := range f.Data {
		payload = payload<<8 | uint32(b)
	}
	return RawMessage(cmd, int32(payload)).To(uint8(f.ID)), nil
}
