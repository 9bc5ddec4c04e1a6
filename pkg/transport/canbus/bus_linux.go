//go:build linux

package canbus

import (
	"fmt"
	"net"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sys/unix"

	"github.com/robotalks/vescdrive/pkg/vesc"
)

// Bus is a raw CAN socket bound to one interface.
// It's safe for concurrent use: each frame is written atomically.
type Bus struct {
	iface string
	fd    int
	lock  sync.Mutex
}

// Open binds a raw CAN socket to the interface, e.g. "can0".
func Open(iface string) (*Bus, error) {
	netIf, err := net.InterfaceByName(iface)
	if err != nil {
		return nil, fmt.Errorf("canbus: interface %s: %w", iface, err)
	}
	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("canbus: socket: %w", err)
	}
	if err = unix.Bind(fd, &unix.SockaddrCAN{Ifindex: netIf.Index}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("canbus: bind %s: %w", iface, err)
	}
	glog.Infof("canbus: opened %s", iface)
	return newBus(iface, fd), nil
}

func newBus(iface string, fd int) *Bus {
	return &Bus{iface: iface, fd: fd}
}

// Interface returns the interface name.
func (b *Bus) Interface() string {
	return b.iface
}

// WriteCAN implements vesc.CANWriter.
func (b *Bus) WriteCAN(id uint32, data []byte) error {
	buf, err := marshalFrame(id, data)
	if err != nil {
		return err
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.fd < 0 {
		return ErrClosed
	}
	n, err := unix.Write(b.fd, buf[:])
	if err != nil {
		return fmt.Errorf("canbus: write %s: %w", b.iface, err)
	}
	if n != frameSize {
		return fmt.Errorf("canbus: short write %d", n)
	}
	return nil
}

// ReadCAN blocks until an extended frame arrives. Standard frames are
// skipped. It returns ErrClosed once the bus is closed, including when
// Close is called while blocked.
func (b *Bus) ReadCAN() (vesc.CANFrame, error) {
	// a private descriptor can't be reused by the kernel while reading,
	// and shutdown in Close still wakes it up.
	b.lock.Lock()
	if b.fd < 0 {
		b.lock.Unlock()
		return vesc.CANFrame{}, ErrClosed
	}
	fd, err := unix.Dup(b.fd)
	b.lock.Unlock()
	if err != nil {
		return vesc.CANFrame{}, fmt.Errorf("canbus: dup %s: %w", b.iface, err)
	}
	defer unix.Close(fd)

	buf := make([]byte, frameSize)
	for {
		n, err := unix.Read(fd, buf)
		if b.closed() {
			return vesc.CANFrame{}, ErrClosed
		}
		if err != nil {
			return vesc.CANFrame{}, fmt.Errorf("canbus: read %s: %w", b.iface, err)
		}
		id, data, extended, err := unmarshalFrame(buf[:n])
		if err != nil {
			return vesc.CANFrame{}, err
		}
		if extended {
			return vesc.CANFrame{ID: id, Data: data}, nil
		}
	}
}

func (b *Bus) closed() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.fd < 0
}

// Close implements io.Closer.
func (b *Bus) Close() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.fd < 0 {
		return nil
	}
	// wakes up a blocked ReadCAN.
	unix.Shutdown(b.fd, unix.SHUT_RDWR)
	err := unix.Close(b.fd)
	b.fd = -1
	return err
}
