package protocol

import (
	"fmt"
	"strings"
)

// Command is a single-byte wire command
type Command byte

// Wire commands
const (
	CmdNone   Command = 0
	CmdLedOn  Command = 'N'
	CmdLedOff Command = 'F'
	CmdProbe  Command = 'P'
)

// ProbeEcho is the byte a responsive device answers to CmdProbe
const ProbeEcho byte = 'P'

// Text forms of the LED commands
const (
	TextOn  = "ON"
	TextOff = "OFF"
)

// String returns a printable name for the command
func (c Command) String() string {
	switch c {
	case CmdLedOn:
		return "led_on"
	case CmdLedOff:
		return "led_off"
	case CmdProbe:
		return "probe"
	case CmdNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(c))
	}
}

// Encoding selects how LED commands are put on the wire
type Encoding int

const (
	// EncodingByte sends 'N' / 'F'
	EncodingByte Encoding = iota
	// EncodingText sends "ON" / "OFF"
	EncodingText
)

// String returns the config name of the encoding
func (e Encoding) String() string {
	switch e {
	case EncodingText:
		return "text"
	default:
		return "byte"
	}
}

// ParseEncoding converts a config value to an Encoding.
// An empty string selects EncodingByte.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "byte":
		return EncodingByte, nil
	case "text":
		return EncodingText, nil
	default:
		return EncodingByte, fmt.Errorf("unknown encoding %q (want byte or text)", s)
	}
}

// EncodeLed returns the payload that drives the LED to the given state
func EncodeLed(on bool, enc Encoding) []byte {
	if enc == EncodingText {
		if on {
			return []byte(TextOn)
		}
		return []byte(TextOff)
	}
	if on {
		return []byte{byte(CmdLedOn)}
	}
	return []byte{byte(CmdLedOff)}
}

// EncodeProbe returns the probe payload
func EncodeProbe() []byte {
	return []byte{byte(CmdProbe)}
}
