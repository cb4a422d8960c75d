// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gdeq0426

import (
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"
)

// Commands
const (
	driverOutputControl            byte = 0x01
	gateDrivingVoltageControl      byte = 0x03
	sourceDrivingVoltageControl    byte = 0x04
	boosterSoftStartControl        byte = 0x0C
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	tempSensorRegWrite             byte = 0x1A
	tempSensorRegRead              byte = 0x1B
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	vcomRegisterWrite              byte = 0x2C
	writeLutRegister               byte = 0x32
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// Data values for the displayUpdateControl2 command. The panel runs the
// selected sub-sequence on the next masterActivation.
const (
	updateFull    byte = 0xF7 // load LUT from OTP, full display cycle
	updateFast    byte = 0xC7 // display cycle with the register LUT
	updatePart    byte = 0xFF // partial display cycle against the red RAM bank
	updateMeasure byte = 0xB1 // temperature measurement only, no display
	updateLoadLUT byte = 0x91 // load temperature and LUT, no display
)

// LUT contains a 112-byte waveform used to program the display: 105 bytes
// for the LUT register followed by the gate voltage, three source voltage
// bytes, VCOM and two bytes of padding.
type LUT []byte

// Opts defines the structure of the display configuration.
type Opts struct {
	Width  int
	Height int

	// BusyTimeout bounds every wait on the BUSY line. Zero means 5s.
	BusyTimeout time.Duration

	// Log receives busy-timeout warnings. Nil disables logging.
	Log *zerolog.Logger
}

// GDEQ0426T82 contains the display configuration for the Good Display
// GDEQ0426T82 panel in its native landscape orientation.
var GDEQ0426T82 = Opts{
	Width:  800,
	Height: 480,
}

const busyPollInterval = 20 * time.Millisecond

func (o *Opts) busyTimeout() time.Duration {
	if o.BusyTimeout > 0 {
		return o.BusyTimeout
	}
	return 5 * time.Second
}

// bufferLen returns the expected framebuffer length in bytes, one bit per
// pixel, rows padded to whole bytes.
func (o *Opts) bufferLen() int {
	return (o.Width + 7) / 8 * o.Height
}

// Dev defines the handler which is used to access the display.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	log  zerolog.Logger
	opts *Opts
}

// New creates new handler which is used to access the display.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	if err := busy.In(gpio.Float, gpio.FallingEdge); err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Log != nil {
		log = *opts.Log
	}

	d := &Dev{
		c:    c,
		dc:   dc,
		cs:   cs,
		rst:  rst,
		busy: busy,
		log:  log,
		opts: opts,
	}

	return d, nil
}

// NewHat creates new handler which is used to access the display. The
// default Raspberry Pi e-paper HAT wiring is used.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Reset the hardware.
func (d *Dev) Reset() error {
	eh := errorHandler{d: *d}

	eh.rstOut(gpio.High)
	time.Sleep(10 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(10 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(10 * time.Millisecond)

	return eh.err
}

// Init configures the display for full refreshes, clears both RAM banks and
// drives the panel to a known all-white state so that subsequent partial
// refreshes diff against defined content.
func (d *Dev) Init() error {
	if err := d.Reset(); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	initDisplay(&eh, d.opts)
	clearRAM(&eh, d.opts)
	turnOnDisplay(&eh)

	return eh.err
}

// InitFast configures the display for fast refreshes. The RAM banks are
// left untouched and a fixed temperature-compensation value is primed into
// the controller, to be reused by every subsequent DrawFast.
func (d *Dev) InitFast() error {
	if err := d.Reset(); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	initDisplayFast(&eh, d.opts)

	return eh.err
}

// DrawFull writes the framebuffer to both RAM banks and runs a full refresh
// with the waveform matching the current panel temperature. Writing both
// banks keeps the previous-frame bank in sync, which later partial
// refreshes depend on.
func (d *Dev) DrawFull(fb []byte) error {
	if err := d.checkBuffer(fb); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	eh.sendCommand(writeRAMBW)
	eh.sendData(fb)
	eh.sendCommand(writeRAMRed)
	eh.sendData(fb)

	writeLUT(&eh, lutForTemperature(readTemperature(&eh)))
	turnOnDisplayFast(&eh)

	return eh.err
}

// DrawFast writes the framebuffer to the current RAM bank only and runs a
// fast refresh with the dedicated fast waveform. The previous-frame bank is
// not updated.
func (d *Dev) DrawFast(fb []byte) error {
	if err := d.checkBuffer(fb); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	eh.sendCommand(writeRAMBW)
	eh.sendData(fb)

	writeLUT(&eh, lutFast)
	eh.readBusy()
	turnOnDisplayFast(&eh)

	return eh.err
}

// DrawPartial refreshes only the given physical window from the
// framebuffer. The window's X range is widened to byte boundaries and
// clamped to the panel; an empty window is a no-op.
func (d *Dev) DrawPartial(fb []byte, win image.Rectangle) error {
	if err := d.checkBuffer(fb); err != nil {
		return err
	}

	win = alignWindow(win).Intersect(image.Rect(0, 0, d.opts.Width, d.opts.Height))
	if win.Empty() {
		return nil
	}

	if err := d.Reset(); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	lut := lutForTemperature(readTemperature(&eh))
	drawPartialWindow(&eh, fb, win, lut, d.opts)

	return eh.err
}

// ReadTemperature runs a measurement cycle on the panel's internal sensor
// and returns the result in whole degrees Celsius. The value is best-effort:
// a busy timeout during the measurement yields a stale reading.
func (d *Dev) ReadTemperature() (int, error) {
	eh := errorHandler{d: *d}

	t := readTemperature(&eh)

	return t, eh.err
}

// Clear drives the whole panel to white through both RAM banks.
func (d *Dev) Clear() error {
	eh := errorHandler{d: *d}

	clearRAM(&eh, d.opts)
	turnOnDisplay(&eh)

	return eh.err
}

// Sleep makes the controller enter deep sleep mode. RAM content is
// retained; call Wake followed by Init or InitFast before drawing again.
func (d *Dev) Sleep() error {
	eh := errorHandler{d: *d}

	eh.sendCommand(deepSleepMode)
	eh.sendData([]byte{0x01})

	if eh.err == nil {
		time.Sleep(100 * time.Millisecond)
	}

	return eh.err
}

// Wake brings the controller out of deep sleep with a hardware reset
// followed by a software reset.
func (d *Dev) Wake() error {
	if err := d.Reset(); err != nil {
		return err
	}

	eh := errorHandler{d: *d}

	eh.sendCommand(swReset)
	eh.readBusy()

	return eh.err
}

// Halt puts the display into deep sleep.
func (d *Dev) Halt() error {
	return d.Sleep()
}

// Bounds returns the physical bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.opts.Width, d.opts.Height)
}

func (d *Dev) checkBuffer(fb []byte) error {
	if len(fb) != d.opts.bufferLen() {
		return fmt.Errorf("framebuffer length %d, want %d", len(fb), d.opts.bufferLen())
	}
	return nil
}

var _ conn.Resource = &Dev{}
