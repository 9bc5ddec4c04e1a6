package drive

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	fx "github.com/robotalks/vescdrive/pkg/framework"
	env "github.com/robotalks/vescdrive/pkg/l1/env/controller"
	"github.com/robotalks/vescdrive/pkg/transport/canbus"
	"github.com/robotalks/vescdrive/pkg/transport/uart"
	"github.com/robotalks/vescdrive/pkg/vesc"
)

// Options defines how the drive daemon reaches its motors.
type Options struct {
	// ConfigFile is the drive layout file.
	ConfigFile string
	// CANInterface is the SocketCAN interface, used unless SerialPort is set.
	CANInterface string
	// SerialPort drives a single VESC over UART instead of CAN.
	SerialPort string
	BaudRate   int
	// Interval is the control loop period.
	Interval time.Duration
}

var defaultOptions = Options{
	ConfigFile:   "drive.yaml",
	CANInterface: "can0",
	BaudRate:     uart.DefaultBaudRate,
	Interval:     50 * time.Millisecond,
}

func init() {
	if val := os.Getenv("VESC_DRIVE_CONFIG"); val != "" {
		defaultOptions.ConfigFile = val
	}
	if val := os.Getenv("VESC_CAN_IFACE"); val != "" {
		defaultOptions.CANInterface = val
	}
	if val := os.Getenv("VESC_SERIAL_PORT"); val != "" {
		defaultOptions.SerialPort = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultOptions.ConfigFile, "config", defaultOptions.ConfigFile, "Drive layout file (yaml, json or toml).")
	flag.StringVar(&defaultOptions.CANInterface, "can", defaultOptions.CANInterface, "SocketCAN interface.")
	flag.StringVar(&defaultOptions.SerialPort, "serial", defaultOptions.SerialPort, "Serial port of a single VESC, overrides -can.")
	flag.IntVar(&defaultOptions.BaudRate, "baud", defaultOptions.BaudRate, "Serial baud rate.")
	flag.DurationVar(&defaultOptions.Interval, "interval", defaultOptions.Interval, "Control loop interval.")
}

// Default gets default options.
func Default() *Options {
	return &defaultOptions
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	opts := defaultOptions
	return &opts
}

// Drive bundles everything the daemon runs.
type Drive struct {
	Controller *Controller
	Interval   time.Duration

	transport io.Closer
}

// AddToLoop implements LoopAdder.
func (d *Drive) AddToLoop(loop *fx.Loop) {
	loop.Interval = d.Interval
	loop.Add(d.Controller)
}

// Close stops all motors and releases the transport.
func (d *Drive) Close() error {
	err := d.Controller.Mixer.Stop()
	if cerr := d.transport.Close(); err == nil {
		err = cerr
	}
	return err
}

// NewDrive loads the layout and opens the transport.
func (o *Options) NewDrive(e *env.Env) (*Drive, error) {
	conf, err := LoadConfig(o.ConfigFile)
	if err != nil {
		return nil, err
	}
	var (
		factory   MotorFactory
		transport io.Closer
	)
	if o.SerialPort != "" {
		if n := len(conf.Targets()); n != 1 {
			return nil, fmt.Errorf("serial port drives exactly one motor, %d configured", n)
		}
		port, err := uart.Open(uart.Config{Name: o.SerialPort, BaudRate: o.BaudRate})
		if err != nil {
			return nil, err
		}
		factory = func(uint8) vesc.Sender { return vesc.UARTMotor{Port: port} }
		transport = port
	} else {
		bus, err := canbus.Open(o.CANInterface)
		if err != nil {
			return nil, err
		}
		factory, transport = CANMotors(bus), bus
	}
	mixer, err := NewMixer(*conf, factory)
	if err != nil {
		transport.Close()
		return nil, err
	}
	return &Drive{
		Controller: NewController(mixer, e.Registrar),
		Interval:   o.Interval,
		transport:  transport,
	}, nil
}
