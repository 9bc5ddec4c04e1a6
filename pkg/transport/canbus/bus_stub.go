//go:build !linux

package canbus

import "github.com/robotalks/vescdrive/pkg/vesc"

// Bus is unavailable on this platform.
type Bus struct{}

// Open always fails with ErrNotSupported.
func Open(iface string) (*Bus, error) {
	return nil, ErrNotSupported
}

// Interface returns the interface name.
func (b *Bus) Interface() string {
	return ""
}

// WriteCAN implements vesc.CANWriter.
func (b *Bus) WriteCAN(id uint32, data []byte) error {
	return ErrNotSupported
}

// ReadCAN always fails with ErrNotSupported.
func (b *Bus) ReadCAN() (vesc.CANFrame, error) {
	return vesc.CANFrame{}, ErrNotSupported
}

// Close implements io.Closer.
func (b *Bus) Close() error {
	return nil
}
