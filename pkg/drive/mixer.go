package drive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robotalks/vescdrive/pkg/vesc"
)

// MotorFactory binds a CAN id to something accepting setpoints.
type MotorFactory func(id uint8) vesc.Sender

// CANMotors creates a MotorFactory for motors sharing one CAN bus.
func CANMotors(bus vesc.CANWriter) MotorFactory {
	return func(id uint8) vesc.Sender {
		return vesc.Motor{ID: id, Bus: bus}
	}
}

// Target is a motor and the side it follows.
type Target struct {
	MotorID uint8
	Side    Side
	// Value is the setpoint computed for the last mix.
	Value float64
}

// TickError collects all motors failed in one mix.
type TickError struct {
	Failures []*vesc.MotorError
}

// Error implements error.
func (e *TickError) Error() string {
	msgs := make([]string, len(e.Failures))
	for n, f := range e.Failures {
		msgs[n] = f.Error()
	}
	return fmt.Sprintf("%d motor(s) failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap supports errors.Is and errors.As on individual failures.
func (e *TickError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for n, f := range e.Failures {
		errs[n] = f
	}
	return errs
}

// Mixer converts tank-drive inputs into per-motor setpoints.
type Mixer struct {
	config  Config
	motors  []vesc.Sender
	targets []Target
}

// NewMixer validates conf and binds every motor using factory.
func NewMixer(conf Config, factory MotorFactory) (*Mixer, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	m := &Mixer{config: conf, targets: conf.Targets()}
	m.motors = make([]vesc.Sender, len(m.targets))
	for n, t := range m.targets {
		m.motors[n] = factory(t.MotorID)
	}
	return m, nil
}

// Config returns the layout in use.
func (m *Mixer) Config() Config {
	return m.config
}

// Targets computes setpoints without sending them.
func (m *Mixer) Targets(left, right float64) []Target {
	targets := make([]Target, len(m.targets))
	for n, t := range m.targets {
		t.Value = t.Side.Select(left, right) * m.config.SpeedMultiplier
		targets[n] = t
	}
	return targets
}

// Mix sends one setpoint to every motor. A failing motor doesn't prevent
// the rest from being commanded; failures are reported as *TickError.
func (m *Mixer) Mix(left, right float64) error {
	return m.Send(m.config.Command, left, right)
}

// Send is Mix using a specific command instead of the configured one.
func (m *Mixer) Send(cmd vesc.CommandType, left, right float64) error {
	var tickErr TickError
	for n, t := range m.Targets(left, right) {
		err := m.motors[n].Send(cmd, t.Value)
		if err == nil {
			continue
		}
		var me *vesc.MotorError
		if !errors.As(err, &me) {
			me = &vesc.MotorError{MotorID: t.MotorID, Command: cmd, Err: err}
		}
		tickErr.Failures = append(tickErr.Failures, me)
	}
	if len(tickErr.Failures) > 0 {
		return &tickErr
	}
	return nil
}

// StopCommand releases a motor when sent with zero, whatever the
// configured command is. Zero position or brake current would hold it.
const StopCommand = vesc.SetCurrent

// Stop sends zero current to every motor, letting them coast.
func (m *Mixer) Stop() error {
	return m.Send(StopCommand, 0, 0)
}

// Motor finds the sender bound to id.
func (m *Mixer) Motor(id uint8) (vesc.Sender, bool) {
	for n, t := range m.targets {
		if t.MotorID == id {
			return m.motors[n], true
		}
	}
	return nil, false
}
