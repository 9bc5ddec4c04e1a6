package vesc

import (
	"fmt"
	"math"
)

// Message is an encoded command ready for serialization.
// It is a value type and never changes once built.
type Message struct {
	command   CommandType
	payload   int32
	target    uint8
	hasTarget bool
}

// NewMessage scales value by the command's factor, rounding half away from
// zero, and builds a Message without target.
func NewMessage(cmd CommandType, value float64) (Message, error) {
	payload, err := ScalePayload(cmd, value)
	if err != nil {
		return Message{}, err
	}
	return Message{command: cmd, payload: payload}, nil
}

// RawMessage builds a Message from an already scaled payload.
func RawMessage(cmd CommandType, payload int32) Message {
	cmd.info()
	return Message{command: cmd, payload: payload}
}

// ScalePayload converts a physical value into the fixed-point payload.
func ScalePayload(cmd CommandType, value float64) (int32, error) {
	scaled := math.Round(value * cmd.Scale())
	// NaN fails both comparisons, so test it explicitly.
	if math.IsNaN(scaled) || scaled > math.MaxInt32 || scaled < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s %v", ErrPayloadOverflow, cmd, value)
	}
	return int32(scaled), nil
}

// To returns a copy of the message addressed to target.
func (m Message) To(target uint8) Message {
	m.target, m.hasTarget = target, true
	return m
}

// Command returns the command type.
func (m Message) Command() CommandType {
	return m.command
}

// Payload returns the scaled payload.
func (m Message) Payload() int32 {
	return m.payload
}

// Target returns the target controller id, if any.
func (m Message) Target() (uint8, bool) {
	return m.target, m.hasTarget
}

// Value converts the payload back to the physical value.
func (m Message) Value() float64 {
	return float64(m.payload) / m.command.Scale()
}

// String implements fmt.Stringer.
func (m Message) String() string {
	if m.hasTarget {
		return fmt.Sprintf("%s(%d)->%d", m.command, m.payload, m.target)
	}
	return fmt.Sprintf("%s(%d)", m.command, m.payload)
}
