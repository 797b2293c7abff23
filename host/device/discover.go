package device

import (
	"usbled/host/serial"
	"usbled/host/usb"
)

var (
	listSerial = serial.Candidates
	findUSB    = usb.Find
)

// Discovery describes where to look for the board
type Discovery struct {
	Transport Kind
	// Ports overrides serial enumeration when non-empty
	Ports     []string
	VendorID  uint16
	ProductID uint16
}

// Candidates returns the descriptors Connect should try, in order.
// An empty result is not an error; Connect reports it as NoDeviceFound.
func (d Discovery) Candidates() ([]PortDescriptor, error) {
	if d.Transport == KindUSB {
		infos, err := findUSB(d.VendorID, d.ProductID)
		if err != nil {
			return nil, err
		}
		return USBDevices(infos), nil
	}

	if len(d.Ports) > 0 {
		return SerialPorts(d.Ports...), nil
	}
	names, err := listSerial()
	if err != nil {
		return nil, err
	}
	return SerialPorts(names...), nil
}
