// Package drive adds the drive and frame commands to the shell.
package drive

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/vescdrive/pkg/cli/sh"
	"github.com/robotalks/vescdrive/pkg/drive/msgs"
	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/transport/canbus"
	"github.com/robotalks/vescdrive/pkg/transport/uart"
	"github.com/robotalks/vescdrive/pkg/vesc"
)

// DefaultMonitorDuration limits how long a monitor command runs.
const DefaultMonitorDuration = 10 * time.Second

// ErrUsage indicates wrong arguments.
var ErrUsage = errors.New("invalid arguments")

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return v, nil
}

func parseMotorID(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: motor id %q", ErrUsage, s)
	}
	return uint8(v), nil
}

// parseTank parses "LEFT [RIGHT]", a single value drives both sides.
func parseTank(args []string) (*msgs.TankDrive, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, ErrUsage
	}
	left, err := parseFloat(args[0])
	if err != nil {
		return nil, err
	}
	right := left
	if len(args) > 1 {
		if right, err = parseFloat(args[1]); err != nil {
			return nil, err
		}
	}
	return &msgs.TankDrive{Left: float32(left), Right: float32(right)}, nil
}

// parseMotorSet parses "ID COMMAND VALUE".
func parseMotorSet(args []string) (*msgs.MotorSet, error) {
	if len(args) != 3 {
		return nil, ErrUsage
	}
	id, err := parseMotorID(args[0])
	if err != nil {
		return nil, err
	}
	cmd, err := vesc.ParseCommand(args[1])
	if err != nil {
		return nil, err
	}
	value, err := parseFloat(args[2])
	if err != nil {
		return nil, err
	}
	return &msgs.MotorSet{MotorId: uint32(id), Command: cmd.String(), Value: value}, nil
}

// parseMessage parses "COMMAND VALUE".
func parseMessage(args []string) (vesc.Message, error) {
	if len(args) != 2 {
		return vesc.Message{}, ErrUsage
	}
	cmd, err := vesc.ParseCommand(args[0])
	if err != nil {
		return vesc.Message{}, err
	}
	value, err := parseFloat(args[1])
	if err != nil {
		return vesc.Message{}, err
	}
	return vesc.NewMessage(cmd, value)
}

// uartFrame encodes "COMMAND VALUE" into hex.
func uartFrame(args []string) (string, error) {
	m, err := parseMessage(args)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(vesc.EncodeUART(m)), nil
}

// canFrame encodes "ID COMMAND VALUE" into the candump style text.
func canFrame(args []string) (string, error) {
	if len(args) != 3 {
		return "", ErrUsage
	}
	id, err := parseMotorID(args[0])
	if err != nil {
		return "", err
	}
	m, err := parseMessage(args[1:])
	if err != nil {
		return "", err
	}
	f, err := vesc.EncodeCAN(m.To(id))
	if err != nil {
		return "", err
	}
	return f.String(), nil
}

// decodeFrames decodes hex encoded UART bytes, possibly several frames.
func decodeFrames(args []string) ([]string, error) {
	data, err := hex.DecodeString(strings.Join(args, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	var p vesc.Parser
	var out []string
	for _, res := range p.Write(data) {
		out = append(out, formatResult(res))
	}
	if p.Receiving() {
		out = append(out, "incomplete frame")
	}
	return out, nil
}

func formatResult(res vesc.ParseResult) string {
	if res.Err != nil {
		return "error: " + res.Err.Error()
	}
	return fmt.Sprintf("%s = %g", res.Message, res.Message.Value())
}

func monitorDuration(args []string) (time.Duration, error) {
	if len(args) == 0 {
		return DefaultMonitorDuration, nil
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return d, nil
}

func monitorCAN(ctx context.Context, bus *canbus.Bus, print func(string)) error {
	return fx.RunWithContextCloser(ctx, bus, func() error {
		for {
			f, err := bus.ReadCAN()
			if err != nil {
				return err
			}
			if m, err := vesc.DecodeCAN(f); err != nil {
				print(fmt.Sprintf("%s (%v)", f, err))
			} else {
				print(fmt.Sprintf("%s %s = %g", f, m, m.Value()))
			}
		}
	})
}

func withMessage[T fx.Message](parse func([]string) (T, error)) func(c *ishell.Context) {
	return sh.MustBeConnected(func(c *ishell.Context) {
		msg, err := parse(c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		sh.DoCommand(c, msg)
	})
}

func printLine(fn func([]string) (string, error)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		out, err := fn(c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(out)
	}
}

var (
	// TankCmd sends TankDrive.
	TankCmd = ishell.Cmd{
		Name:    "drive.tank",
		Aliases: []string{"tank"},
		Help:    "LEFT [RIGHT], inputs in [-1, 1]",
		Func:    withMessage(parseTank),
	}

	// StopCmd sends DriveStop.
	StopCmd = ishell.Cmd{
		Name:    "drive.stop",
		Aliases: []string{"stop"},
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.DriveStop{})
		}),
	}

	// StatusCmd sends DriveStatusQuery.
	StatusCmd = ishell.Cmd{
		Name:    "drive.status",
		Aliases: []string{"ds"},
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.DriveStatusQuery{})
		}),
	}

	// MotorSetCmd sends MotorSet.
	MotorSetCmd = ishell.Cmd{
		Name:    "motor.set",
		Aliases: []string{"ms"},
		Help:    "ID COMMAND VALUE",
		Func:    withMessage(parseMotorSet),
	}

	// UARTFrameCmd prints the UART frame of a command.
	UARTFrameCmd = ishell.Cmd{
		Name: "frame.uart",
		Help: "COMMAND VALUE",
		Func: printLine(uartFrame),
	}

	// CANFrameCmd prints the CAN frame of a command.
	CANFrameCmd = ishell.Cmd{
		Name: "frame.can",
		Help: "ID COMMAND VALUE",
		Func: printLine(canFrame),
	}

	// DecodeCmd decodes hex UART bytes.
	DecodeCmd = ishell.Cmd{
		Name: "frame.decode",
		Help: "HEX...",
		Func: func(c *ishell.Context) {
			lines, err := decodeFrames(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			for _, line := range lines {
				c.Println(line)
			}
		},
	}

	// CANMonitorCmd prints VESC commands seen on a CAN interface.
	CANMonitorCmd = ishell.Cmd{
		Name: "can.monitor",
		Help: "IFACE [DURATION]",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(ErrUsage)
				return
			}
			dur, err := monitorDuration(c.Args[1:])
			if err != nil {
				c.Err(err)
				return
			}
			bus, err := canbus.Open(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), dur)
			defer cancel()
			if err := monitorCAN(ctx, bus, func(s string) { c.Println(s) }); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				c.Err(err)
			}
		},
	}

	// UARTMonitorCmd prints VESC frames received on a serial port.
	UARTMonitorCmd = ishell.Cmd{
		Name: "uart.monitor",
		Help: "PORT [DURATION]",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(ErrUsage)
				return
			}
			dur, err := monitorDuration(c.Args[1:])
			if err != nil {
				c.Err(err)
				return
			}
			port, err := uart.Open(uart.Config{Name: c.Args[0], BaudRate: uart.DefaultBaudRate})
			if err != nil {
				c.Err(err)
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), dur)
			defer cancel()
			err = port.ReadFrames(ctx, func(res vesc.ParseResult) {
				c.Println(formatResult(res))
			})
			if err != nil && !errors.Is(err, context.DeadlineExceeded) {
				c.Err(err)
			}
		},
	}

	// UARTPortsCmd lists serial ports.
	UARTPortsCmd = ishell.Cmd{
		Name: "uart.ports",
		Func: func(c *ishell.Context) {
			ports, err := uart.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			for _, name := range ports {
				c.Println(name)
			}
		},
	}
)

func init() {
	sh.AddCmds(
		&TankCmd,
		&StopCmd,
		&StatusCmd,
		&MotorSetCmd,
		&UARTFrameCmd,
		&CANFrameCmd,
		&DecodeCmd,
		&CANMonitorCmd,
		&UARTMonitorCmd,
		&UARTPortsCmd,
	)
}
