package vesc

import (
	"fmt"
	"strings"
)

// CommandType is a VESC control command.
type CommandType int

// Supported commands. Wire ids live in commandTable and must never change.
const (
	SetDutyCycle CommandType = iota
	SetCurrent
	SetCurrentBrake
	SetRpm
	SetPosition

	numCommands
)

type commandInfo struct {
	id    byte
	scale float64
	name  string
}

var commandTable = [numCommands]commandInfo{
	SetDutyCycle:    {id: 0x00, scale: 100000, name: "duty_cycle"},
	SetCurrent:      {id: 0x01, scale: 1000, name: "current"},
	SetCurrentBrake: {id: 0x02, scale: 1000, name: "current_brake"},
	SetRpm:          {id: 0x03, scale: 1, name: "rpm"},
	SetPosition:     {id: 0x04, scale: 1000000, name: "position"},
}

var commandAliases = map[string]CommandType{
	"duty":  SetDutyCycle,
	"brake": SetCurrentBrake,
	"pos":   SetPosition,
}

// Commands lists all command types in id order.
func Commands() []CommandType {
	cmds := make([]CommandType, numCommands)
	for n := range cmds {
		cmds[n] = CommandType(n)
	}
	return cmds
}

func (c CommandType) info() *commandInfo {
	if !c.Valid() {
		panic(fmt.Sprintf("vesc: no table entry for command type %d", int(c)))
	}
	return &commandTable[c]
}

// Valid indicates c has a table entry.
func (c CommandType) Valid() bool {
	return c >= 0 && c < numCommands
}

// ID returns the command id used on the wire.
func (c CommandType) ID() byte {
	return c.info().id
}

// Scale returns the fixed-point factor applied to physical values.
func (c CommandType) Scale() float64 {
	return c.info().scale
}

// String implements fmt.Stringer.
func (c CommandType) String() string {
	if !c.Valid() {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandTable[c].name
}

// CommandFromID looks up the command with the given wire id.
func CommandFromID(id byte) (CommandType, bool) {
	for n := range commandTable {
		if commandTable[n].id == id {
			return CommandType(n), true
		}
	}
	return 0, false
}

// ParseCommand parses a command name, e.g. "rpm" or "duty_cycle".
func ParseCommand(name string) (CommandType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for n := range commandTable {
		if commandTable[n].name == name {
			return CommandType(n), nil
		}
	}
	if c, ok := commandAliases[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
