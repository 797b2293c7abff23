package device

import (
	"fmt"
	"time"

	"usbled/host/serial"
	"usbled/host/usb"
)

// Opener turns a descriptor into an open handle
type Opener interface {
	Open(d PortDescriptor) (serial.Port, error)
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(d PortDescriptor) (serial.Port, error)

func (f OpenerFunc) Open(d PortDescriptor) (serial.Port, error) {
	return f(d)
}

// DefaultOpener opens serial ports with tarm/serial and USB devices with
// karalabe/usb.
type DefaultOpener struct {
	Baud        int
	ReadTimeout time.Duration
}

func (o DefaultOpener) Open(d PortDescriptor) (serial.Port, error) {
	switch d.Kind {
	case KindSerial, "":
		cfg := serial.DefaultConfig(d.Name)
		if o.Baud > 0 {
			cfg.Baud = o.Baud
		}
		if o.ReadTimeout > 0 {
			cfg.ReadTimeout = o.ReadTimeout
		}
		return serial.Open(cfg)

	case KindUSB:
		port, err := usb.Open(d.VendorID, d.ProductID, d.Name)
		if err != nil {
			return nil, err
		}
		return port, nil

	default:
		return nil, fmt.Errorf("unknown port kind %q", d.Kind)
	}
}
