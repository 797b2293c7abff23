package device

import (
	"fmt"

	"usbled/host/usb"
)

// Kind selects the transport behind a PortDescriptor
type Kind string

const (
	KindSerial Kind = "serial"
	KindUSB    Kind = "usb"
)

// ParseKind converts a config value to a Kind; empty selects serial
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindSerial:
		return KindSerial, nil
	case KindUSB:
		return KindUSB, nil
	default:
		return "", fmt.Errorf("unknown transport %q (want serial or usb)", s)
	}
}

// PortDescriptor names one candidate device.
// For serial ports Name is the device path; for USB it is the platform path
// reported by enumeration (empty means "first match").
type PortDescriptor struct {
	Kind      Kind
	Name      string
	VendorID  uint16
	ProductID uint16
}

func (d PortDescriptor) String() string {
	if d.Kind == KindUSB {
		if d.Name == "" {
			return fmt.Sprintf("usb %04x:%04x", d.VendorID, d.ProductID)
		}
		return fmt.Sprintf("usb %04x:%04x@%s", d.VendorID, d.ProductID, d.Name)
	}
	return d.Name
}

// SerialPorts builds serial descriptors in the given order
func SerialPorts(names ...string) []PortDescriptor {
	ports := make([]PortDescriptor, 0, len(names))
	for _, name := range names {
		ports = append(ports, PortDescriptor{Kind: KindSerial, Name: name})
	}
	return ports
}

// USBDevices builds USB descriptors from enumeration results
func USBDevices(infos []usb.Info) []PortDescriptor {
	ports := make([]PortDescriptor, 0, len(infos))
	for _, info := range infos {
		ports = append(ports, PortDescriptor{
			Kind:      KindUSB,
			Name:      info.Path,
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
		})
	}
	return ports
}
