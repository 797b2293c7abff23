//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// InitUSB configures the CDC-ACM endpoint the host talks to.
// TinyGo brings USB up before main, so a failure here only means the
// line settings were rejected.
func InitUSB() error {
	return machine.Serial.Configure(machine.UARTConfig{})
}

// USBAvailable reports how many received bytes are waiting
func USBAvailable() int {
	return machine.Serial.Buffered()
}

func USBRead() (byte, error) {
	return machine.Serial.ReadByte()
}

func USBWrite(b byte) error {
	return machine.Serial.WriteByte(b)
}
