// Package protocol implements the LED command set shared by the host tool and
// the firmware.
//
// Every command is a single ASCII byte. The original USB scripts sent the
// short strings "ON" and "OFF" instead, so the decoder accepts both forms.
package protocol

// Version represents the protocol/firmware version
const Version = "0.2.0"

const (
	InputBufferSize = 64   // Firmware receive FIFO
	MaxTextCommand  = 3    // Longest text command ("OFF")
	EchoTimeoutMs   = 2000 // Default host-side probe timeout
)
