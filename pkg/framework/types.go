// Package framework runs controllers in a periodic loop.
//
// Each iteration snapshots the posted messages and hands them to the
// controllers in priority order. A controller may take a message,
// leaving it out for the rest, or add messages for the lower levels.
package framework

import (
	"context"
	"time"
)

// Named is implemented by runners which log a name.
type Named interface {
	Name() string
}

// Runnable is a background job bound to a context.
type Runnable interface {
	Run(context.Context) error
}

// Message is anything posted to the loop.
type Message interface {
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
}

// Controller runs once per iteration at its priority level.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc is the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}

// ControlContext is passed to a Controller for one iteration.
type ControlContext interface {
	LoopControl

	// Context is the context of the running loop.
	Context() context.Context
	// Time is the start of the iteration, identical for all levels.
	Time() time.Time
	// PriorityLevel is the level being run.
	PriorityLevel() int
	// Messages are those posted before the iteration started, minus
	// the ones taken by higher levels.
	Messages() MessageStore
}

// PriorityLevels is the number of levels, 0 runs first.
const PriorityLevels = 16

// Priority levels used by the drive.
const (
	// PrLvControl handles commands.
	PrLvControl = 8
	// PrLvAcuate writes to actuators after commands are handled.
	PrLvAcuate = 12
	// PrLvIdle handles what nobody else took.
	PrLvIdle = PriorityLevels - 1
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// PostMessage enqueues the message for the next iteration.
	PostMessage(Message)
	// TriggerNext starts the next iteration without waiting for
	// the interval.
	TriggerNext()
}

// MessageStore is the message list of an iteration.
type MessageStore interface {
	// ProcessMessages visits messages in posting order.
	ProcessMessages(MessageProcessor)
	// AddMessages appends messages visible to lower levels only.
	AddMessages(msgs ...Message)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext is the state of one visited message.
type MessageProcessingContext interface {
	// CurrentMessage is the visited message.
	CurrentMessage() Message
	// MessageTaken removes the message from the store.
	MessageTaken()
	// StopProcessing ends the visit after the current message.
	StopProcessing()
	// AddMessages appends messages visible to lower levels only.
	AddMessages(msgs ...Message)
}
