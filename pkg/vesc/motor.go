package vesc

import "github.com/golang/glog"

// Sender accepts physical setpoints.
type Sender interface {
	Send(cmd CommandType, value float64) error
}

// CANWriter writes one extended CAN frame.
// Implementations shared by multiple motors must serialize writes.
type CANWriter interface {
	WriteCAN(id uint32, data []byte) error
}

// UARTWriter writes one complete UART frame.
type UARTWriter interface {
	WriteUART(frame []byte) error
}

// Motor is a VESC on a CAN bus.
type Motor struct {
	ID  uint8
	Bus CANWriter
}

// Send implements Sender.
func (m Motor) Send(cmd CommandType, value float64) error {
	msg, err := NewMessage(cmd, value)
	if err != nil {
		return &MotorError{MotorID: m.ID, Command: cmd, Err: err}
	}
	frame, err := EncodeCAN(msg.To(m.ID))
	if err != nil {
		return &MotorError{MotorID: m.ID, Command: cmd, Err: err}
	}
	if err = m.Bus.WriteCAN(frame.ID, frame.Data); err != nil {
		return &MotorError{MotorID: m.ID, Command: cmd, Err: err}
	}
	if glog.V(4) {
		glog.Infof("motor %d: %s %v (%s)", m.ID, cmd, value, frame)
	}
	return nil
}

// SetDutyCycle sets duty cycle in [-1, 1].
func (m Motor) SetDutyCycle(duty float64) error {
	return m.Send(SetDutyCycle, duty)
}

// SetCurrent sets motor current in amperes.
func (m Motor) SetCurrent(amps float64) error {
	return m.Send(SetCurrent, amps)
}

// SetCurrentBrake sets braking current in amperes.
func (m Motor) SetCurrentBrake(amps float64) error {
	return m.Send(SetCurrentBrake, amps)
}

// SetRpm sets electrical RPM.
func (m Motor) SetRpm(erpm float64) error {
	return m.Send(SetRpm, erpm)
}

// SetPosition sets position in degrees.
func (m Motor) SetPosition(degrees float64) error {
	return m.Send(SetPosition, degrees)
}

// UARTMotor is a VESC attached directly to a serial port.
type UARTMotor struct {
	Port UARTWriter
}

// Send implements Sender.
func (m UARTMotor) Send(cmd CommandType, value float64) error {
	msg, err := NewMessage(cmd, value)
	if err != nil {
		return err
	}
	frame := EncodeUART(msg)
	if err = m.Port.WriteUART(frame); err != nil {
		return err
	}
	if glog.V(4) {
		glog.Infof("uart: %s %v (% x)", cmd, value, frame)
	}
	return nil
}

// SetDutyCycle sets duty cycle in [-1, 1].
func (m UARTMotor) SetDutyCycle(duty float64) error {
	return m.Send(SetDutyCycle, duty)
}

// SetCurrent sets motor current in amperes.
func (m UARTMotor) SetCurrent(amps float64) error {
	return m.Send(SetCurrent, amps)
}

// SetCurrentBrake sets braking current in amperes.
func (m UARTMotor) SetCurrentBrake(amps float64) error {
	return m.Send(SetCurrentBrake, amps)
}

// SetRpm sets electrical RPM.
func (m UARTMotor) SetRpm(erpm float64) error {
	return m.Send(SetRpm, erpm)
}

// SetPosition sets position in degrees.
func (m UARTMotor) SetPosition(degrees float64) error {
	return m.Send(SetPosition, degrees)
}
