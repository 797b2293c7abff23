//go:build rp2040 || rp2350

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// Pin assignments. The commanded LED sits on GPIO15 through a resistor; boards
// with an onboard WS2812 (RP2040-Zero, Pico-style clones) wire it to GPIO16.
const (
	ledPin         = machine.GPIO15
	statusPixelPin = machine.GPIO16
)

var (
	pixelOn  = color.RGBA{R: 0x00, G: 0x40, B: 0x00, A: 0xff}
	pixelOff = color.RGBA{R: 0x10, G: 0x00, B: 0x00, A: 0xff}
)

// statusLED drives the commanded LED and mirrors it on a WS2812 pixel
type statusLED struct {
	pin   machine.Pin
	pixel ws2812.Device
	on    bool
}

func newStatusLED(pin, pixelPin machine.Pin) *statusLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pixelPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	l := &statusLED{
		pin:   pin,
		pixel: ws2812.New(pixelPin),
	}
	l.Set(false)
	return l
}

// Set switches the LED and updates the pixel colour
func (l *statusLED) Set(on bool) {
	l.on = on
	l.pin.Set(on)

	c := pixelOff
	if on {
		c = pixelOn
	}
	// A board without a pixel just sees a pulse train on an unused pin
	_ = l.pixel.WriteColors([]color.RGBA{c})
}
