// Package uart talks to a VESC over a serial port.
package uart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"
	"go.bug.st/serial"

	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/vesc"
)

// DefaultBaudRate is the VESC firmware default.
const DefaultBaudRate = 115200

// Config is the serial port setup.
type Config struct {
	Name     string
	BaudRate int
}

// Port is an opened serial port carrying VESC UART frames.
// Writes are serialized.
type Port struct {
	name string
	rw   io.ReadWriteCloser
	lock sync.Mutex
}

// ErrIncompleteWrite indicates the port accepted only part of a frame.
var ErrIncompleteWrite = errors.New("uart: incomplete write")

// Open opens the serial port in 8N1 mode.
func Open(conf Config) (*Port, error) {
	if conf.BaudRate == 0 {
		conf.BaudRate = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: conf.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	sp, err := serial.Open(conf.Name, mode)
	if err != nil {
		return nil, fmt.Errorf("uart: open %s: %w", conf.Name, err)
	}
	glog.Infof("uart: opened %s at %d baud", conf.Name, conf.BaudRate)
	return New(conf.Name, sp), nil
}

// New wraps an already opened stream.
func New(name string, rw io.ReadWriteCloser) *Port {
	return &Port{name: name, rw: rw}
}

// Ports lists serial ports available on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Name returns the port name.
func (p *Port) Name() string {
	return p.name
}

// WriteUART implements vesc.UARTWriter.
func (p *Port) WriteUART(frame []byte) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	n, err := p.rw.Write(frame)
	if err != nil {
		return fmt.Errorf("uart: write %s: %w", p.name, err)
	}
	if n != len(frame) {
		return fmt.Errorf("%w: %d of %d bytes", ErrIncompleteWrite, n, len(frame))
	}
	return nil
}

// ReadFrames reads until ctx is done or the stream fails, passing every
// complete frame to handler. Corrupt frames are passed with Err set.
// The port is closed on return.
func (p *Port) ReadFrames(ctx context.Context, handler func(vesc.ParseResult)) error {
	return fx.RunWithContextCloser(ctx, p.rw, func() error {
		var parser vesc.Parser
		buf := make([]byte, 64)
		for {
			n, err := p.rw.Read(buf)
			for _, pr := range parser.Write(buf[:n]) {
				handler(pr)
			}
			if err != nil {
				return err
			}
		}
	})
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.rw.Close()
}
