// Package usb finds and opens the LED board as a raw USB device by its
// vendor/product ID pair.
package usb

import (
	"fmt"

	"github.com/karalabe/usb"
)

// Default IDs of the PIC18F CDC board
const (
	DefaultVendorID  uint16 = 0x04D8 // Microchip
	DefaultProductID uint16 = 0x003F
)

// Info describes one matching USB device
type Info struct {
	Path      string
	VendorID  uint16
	ProductID uint16
	Product   string
	Serial    string
}

// enumerate is swapped in tests
var enumerate = usb.Enumerate

// Supported reports whether USB access is compiled in for this platform
func Supported() bool {
	return usb.Supported()
}

// Find lists devices matching vendorID/productID in enumeration order
func Find(vendorID, productID uint16) ([]Info, error) {
	infos, err := enumerate(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate USB devices %04x:%04x: %w", vendorID, productID, err)
	}

	found := make([]Info, 0, len(infos))
	for _, info := range infos {
		found = append(found, Info{
			Path:      info.Path,
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			Product:   info.Product,
			Serial:    info.Serial,
		})
	}
	return found, nil
}

// Open opens the device with the given path, or the first match when path is
// empty.
func Open(vendorID, productID uint16, path string) (*Port, error) {
	infos, err := enumerate(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate USB devices %04x:%04x: %w", vendorID, productID, err)
	}

	for _, info := range infos {
		if path != "" && info.Path != path {
			continue
		}
		dev, err := info.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open USB device %s: %w", info.Path, err)
		}
		return &Port{dev: dev, path: info.Path}, nil
	}

	if path != "" {
		return nil, fmt.Errorf("USB device %04x:%04x at %s not found", vendorID, productID, path)
	}
	return nil, fmt.Errorf("USB device %04x:%04x not found", vendorID, productID)
}

// Port adapts a karalabe/usb device to serial.Port
type Port struct {
	dev  usb.Device
	path string
}

// Read reads from the device's IN endpoint
func (p *Port) Read(b []byte) (int, error) {
	return p.dev.Read(b)
}

// Write writes to the device's OUT endpoint
func (p *Port) Write(b []byte) (int, error) {
	return p.dev.Write(b)
}

// Close releases the device
func (p *Port) Close() error {
	if p.dev == nil {
		return nil
	}
	err := p.dev.Close()
	p.dev = nil
	return err
}

// Flush is a no-op; raw USB transfers are not buffered on the host side
func (p *Port) Flush() error {
	return nil
}

// Path returns the platform path of the open device
func (p *Port) Path() string {
	return p.path
}
