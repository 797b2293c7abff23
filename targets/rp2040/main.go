//go:build rp2040 || rp2350

// LED board firmware. Listens on USB CDC for protocol commands and drives
// one LED; a second LED blinks as a heartbeat while the firmware runs.
package main

import (
	"machine"
	"time"

	"usbled/protocol"
)

const heartbeatPeriod = time.Second

var (
	inputBuffer *protocol.FifoBuffer
	decoder     *protocol.Decoder
	led         *statusLED
	heartbeat   machine.Pin

	// Debug counters
	commandsHandled uint32
	overflows       uint32
	writeErrors     uint32
	usbInitErrors   uint32
)

func main() {
	// Disable the watchdog so a previous reset request doesn't persist
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	// Keep running on failure; the heartbeat still shows the board is alive
	if err := InitUSB(); err != nil {
		usbInitErrors++
	}

	led = newStatusLED(ledPin, statusPixelPin)
	heartbeat = machine.LED
	heartbeat.Configure(machine.PinConfig{Mode: machine.PinOutput})

	inputBuffer = protocol.NewFifoBuffer(protocol.InputBufferSize)
	decoder = protocol.NewDecoder()

	lastBeat := time.Now()
	beat := false

	for {
		func() {
			// Keep the loop alive through a bad command
			defer func() {
				if r := recover(); r != nil {
					inputBuffer.Reset()
				}
			}()

			receiveUSB()

			for {
				cmd, ok := decoder.Next(inputBuffer)
				if !ok {
					break
				}
				handleCommand(cmd)
			}
		}()

		if time.Since(lastBeat) >= heartbeatPeriod {
			beat = !beat
			heartbeat.Set(beat)
			lastBeat = time.Now()
		}

		time.Sleep(100 * time.Microsecond)
	}
}

// receiveUSB moves pending USB bytes into the input FIFO
func receiveUSB() {
	for USBAvailable() > 0 {
		b, err := USBRead()
		if err != nil {
			return
		}
		if !inputBuffer.Push(b) {
			// Full of bytes the decoder can't use; start over
			overflows++
			inputBuffer.Reset()
		}
	}
}

// handleCommand applies one decoded command
func handleCommand(cmd protocol.Command) {
	switch cmd {
	case protocol.CmdLedOn:
		led.Set(true)
	case protocol.CmdLedOff:
		led.Set(false)
	case protocol.CmdProbe:
		if err := USBWrite(protocol.ProbeEcho); err != nil {
			writeErrors++
		}
	default:
		return
	}
	commandsHandled++
}
