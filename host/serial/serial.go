package serial

import (
	"io"
	"time"
)

// Port represents an open device handle.
// Implementations:
// - Native serial (using github.com/tarm/serial)
// - Raw USB (host/usb, using github.com/karalabe/usb)
// - Fake ports in tests
type Port interface {
	io.ReadWriteCloser

	// Flush discards any unread input
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores this)
	Baud int

	// Read timeout (0 = blocking)
	ReadTimeout time.Duration
}

// DefaultBaud matches the PIC18F CDC firmware's line coding
const DefaultBaud = 9600

// DefaultConfig returns a default configuration for the LED board
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100 * time.Millisecond,
	}
}
