// Package canbus writes VESC commands to a Linux SocketCAN interface.
package canbus

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxDataLen is the payload limit of a classic CAN frame.
const MaxDataLen = 8

const (
	frameSize = 16 // sizeof(struct can_frame)
	effFlag   = 0x80000000
	effMask   = 0x1fffffff
)

var (
	// ErrNotSupported is returned on platforms without SocketCAN.
	ErrNotSupported = errors.New("canbus: not supported on this platform")
	// ErrClosed is returned when writing to a closed bus.
	ErrClosed = errors.New("canbus: closed")
	// ErrInvalidFrame indicates an id or payload the frame can't carry.
	ErrInvalidFrame = errors.New("canbus: invalid frame")
)

// marshalFrame lays out an extended frame as struct can_frame.
func marshalFrame(id uint32, data []byte) ([frameSize]byte, error) {
	var buf [frameSize]byte
	if id > effMask || len(data) > MaxDataLen {
		return buf, fmt.Errorf("%w: id 0x%x, %d bytes", ErrInvalidFrame, id, len(data))
	}
	binary.LittleEndian.PutUint32(buf[0:4], id|effFlag)
	buf[4] = byte(len(data))
	copy(buf[8:], data)
	return buf, nil
}

// unmarshalFrame parses struct can_frame, reporting whether it's an
// extended frame.
func unmarshalFrame(buf []byte) (id uint32, data []byte, extended bool, err error) {
	if len(buf) != frameSize || buf[4] > MaxDataLen {
		return 0, nil, false, fmt.Errorf("%w: % x", ErrInvalidFrame, buf)
	}
	raw := binary.LittleEndian.Uint32(buf[0:4])
	extended = raw&effFlag != 0
	if extended {
		id = raw & effMask
	} else {
		id = raw & 0x7ff
	}
	data = append([]byte(nil), buf[8:8+buf[4]]...)
	return id, data, extended, nil
}
