package drive

import (
	"errors"
	"math"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/vescdrive/pkg/drive/msgs"
	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/l1"
	l1msgs "github.com/robotalks/vescdrive/pkg/l1/msgs"
	"github.com/robotalks/vescdrive/pkg/vesc"
)

// Controller is the L1 controller driving the motors.
//
// While a tank-drive setpoint is active it's re-sent to every motor each
// iteration, as the VESC firmware stops a motor on its own when commands
// cease. If no new setpoint arrives within CommandTimeout, zero is sent
// and the drive goes idle.
type Controller struct {
	Mixer          *Mixer
	Registrar      l1.Registrar
	CommandTimeout time.Duration

	left, right float64
	active      bool
	stopPending bool
	lastCmdAt   time.Time

	ticks       uint64
	failedTicks uint64
	failures    map[uint8]string
}

// NewController creates a Controller.
func NewController(mixer *Mixer, reg l1.Registrar) *Controller {
	return &Controller{
		Mixer:          mixer,
		Registrar:      reg,
		CommandTimeout: mixer.Config().CommandTimeout,
	}
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, fx.ControlFunc(c.handleCommands))
	loop.AddController(fx.PrLvAcuate, fx.ControlFunc(c.actuate))
}

// Active indicates a setpoint is being applied.
func (c *Controller) Active() bool {
	return c.active
}

func (c *Controller) handleCommands(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		cmdMsg, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if !ok {
			return
		}
		var reply fx.Message
		switch m := cmdMsg.Command.Msg().(type) {
		case *msgs.TankDrive:
			c.left, c.right = clampInput(m.Left), clampInput(m.Right)
			c.active, c.stopPending = true, false
			c.lastCmdAt = cc.Time()
			reply = l1msgs.NewCommandOK()
		case *msgs.DriveStop:
			c.left, c.right = 0, 0
			c.active, c.stopPending = false, true
			reply = l1msgs.NewCommandOK()
		case *msgs.MotorSet:
			reply = c.setMotor(m)
		case *msgs.DriveStatusQuery:
			reply = c.Status()
		default:
			return
		}
		mctx.MessageTaken()
		if err := cmdMsg.Command.Done(reply); err != nil {
			glog.Warningf("reply %T error: %v", reply, err)
		}
	}))
	return nil
}

func (c *Controller) setMotor(m *msgs.MotorSet) fx.Message {
	if m.MotorId > math.MaxUint8 {
		return l1msgs.NewCommandErrFromMsg("motor id out of range")
	}
	motor, ok := c.Mixer.Motor(uint8(m.MotorId))
	if !ok {
		return l1msgs.NewCommandErrFromMsg("motor not configured")
	}
	cmd, err := vesc.ParseCommand(m.Command)
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	// manual control takes over from tank drive.
	c.active, c.stopPending = false, false
	if err = motor.Send(cmd, m.Value); err != nil {
		return l1msgs.NewCommandErr(err)
	}
	return l1msgs.NewCommandOK()
}

func (c *Controller) actuate(cc fx.ControlContext) error {
	if c.active && c.CommandTimeout > 0 && cc.Time().Sub(c.lastCmdAt) > c.CommandTimeout {
		glog.Warningf("no drive command in %v, stopping", c.CommandTimeout)
		c.left, c.right = 0, 0
		c.active, c.stopPending = false, true
	}
	var err error
	switch {
	case c.active:
		err = c.Mixer.Mix(c.left, c.right)
	case c.stopPending:
		// retried until all motors accept it.
		if err = c.Mixer.Stop(); err == nil {
			c.stopPending = false
		}
	default:
		return nil
	}
	c.ticks++
	c.recordFailures(cc, err)
	return nil
}

func (c *Controller) recordFailures(cc fx.ControlContext, err error) {
	var tickErr *TickError
	if err != nil && !errors.As(err, &tickErr) {
		glog.Errorf("drive error: %v", err)
		return
	}
	failures := make(map[uint8]string)
	if tickErr != nil {
		c.failedTicks++
		for _, f := range tickErr.Failures {
			failures[f.MotorID] = f.Err.Error()
		}
	}
	changed := len(failures) != len(c.failures)
	for id, msg := range failures {
		if c.failures[id] != msg {
			changed = true
		}
	}
	c.failures = failures
	if !changed {
		return
	}
	if tickErr == nil {
		glog.Info("all motors recovered")
		return
	}
	glog.Warningf("drive tick failed: %v", tickErr)
	if c.Registrar == nil {
		return
	}
	fault := &msgs.DriveFault{Message: tickErr.Error()}
	for _, f := range tickErr.Failures {
		fault.MotorIds = append(fault.MotorIds, uint32(f.MotorID))
	}
	if err = c.Registrar.SendEvent(cc.Context(), fault); err != nil {
		glog.Warningf("send fault event error: %v", err)
	}
}

// Status reports the current state.
func (c *Controller) Status() *msgs.DriveStatus {
	status := &msgs.DriveStatus{
		Active:     c.active,
		Left:       float32(c.left),
		Right:      float32(c.right),
		Command:    c.Mixer.Config().Command.String(),
		Ticks:      c.ticks,
		FailedTick: c.failedTicks,
	}
	for _, t := range c.Mixer.Targets(c.left, c.right) {
		status.Motors = append(status.Motors, &msgs.MotorStatus{
			MotorId: uint32(t.MotorID),
			Side:    t.Side.String(),
			Value:   t.Value,
			Error:   c.failures[t.MotorID],
		})
	}
	return status
}

func clampInput(v float32) float64 {
	switch {
	case math.IsNaN(float64(v)):
		return 0
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return float64(v)
}
