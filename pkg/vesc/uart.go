package vesc

import (
	"encoding/binary"
	"fmt"
)

// UARTFrameLen is the size of every UART command frame.
const UARTFrameLen = 10

const (
	uartStart       byte = 0x02
	uartLength      byte = 0x05 // command byte + 4 payload bytes
	uartEnd         byte = 0x03
	uartCommandBase byte = 0x05
)

// EncodeUART serializes m into a UART frame. Any target is ignored.
func EncodeUART(m Message) []byte {
	return AppendUART(make([]byte, 0, UARTFrameLen), m)
}

// AppendUART appends the UART frame of m to dst.
func AppendUART(dst []byte, m Message) []byte {
	start := len(dst)
	dst = append(dst, uartStart, uartLength, uartCommandBase+m.command.ID())
	dst = binary.BigEndian.AppendUint32(dst, uint32(m.payload))
	// equal to CRC-16/XMODEM over command byte and payload.
	dst = binary.BigEndian.AppendUint16(dst, CRC16(dst[start:]))
	return append(dst, uartEnd)
}

// DecodeUART parses a single UART frame.
func DecodeUART(frame []byte) (Message, error) {
	if len(frame) != UARTFrameLen {
		return Message{}, fmt.Errorf("%w: length %d", ErrMalformedFrame, len(frame))
	}
	if frame[0] != uartStart || frame[1] != uartLength || frame[9] != uartEnd {
		return Message{}, fmt.Errorf("%w: bad framing % x", ErrMalformedFrame, frame)
	}
	if sum, expected := binary.BigEndian.Uint16(frame[7:9]), CRC16(frame[:7]); sum != expected {
		return Message{}, fmt.Errorf("%w: got 0x%04x, expect 0x%04x", ErrChecksumMismatch, sum, expected)
	}
	if frame[2] < uartCommandBase {
		return Message{}, fmt.Errorf("%w: uart command byte 0x%02x", ErrUnknownCommand, frame[2])
	}
	cmd, ok := CommandFromID(frame[2] - uartCommandBase)
	if !ok {
		return Message{}, fmt.Errorf("%w: uart command byte 0x%02x", ErrUnknownCommand, frame[2])
	}
	return RawMessage(cmd, int32(binary.BigEndian.Uint32(frame[3:7]))), nil
}
