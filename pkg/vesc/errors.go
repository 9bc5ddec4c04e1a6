package vesc

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadOverflow indicates the scaled value does not fit in int32.
	ErrPayloadOverflow = errors.New("payload overflow")
	// ErrMissingTargetID indicates a CAN frame was requested for a message
	// without target.
	ErrMissingTargetID = errors.New("missing target id")
	// ErrChecksumMismatch indicates a corrupt UART frame. The frame should
	// be discarded, the session is still usable.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrMalformedFrame indicates bytes not laid out as a command frame.
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrUnknownCommand indicates a command id or name not in the table.
	ErrUnknownCommand = errors.New("unknown command")
)

// MotorError reports a failed command to a single motor.
type MotorError struct {
	MotorID uint8
	Command CommandType
	Err     error
}

// Error implements error.
func (e *MotorError) Error() string {
	return fmt.Sprintf("motor %d %s: %v", e.MotorID, e.Command, e.Err)
}

// Unwrap returns the underlying encode or transport error.
func (e *MotorError) Unwrap() error {
	return e.Err
}
