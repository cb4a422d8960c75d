// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gdeq0426

import (
	"bytes"
	"image"
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sendByte(byte)
	readData([]byte)
	readBusy()
}

// gatherLimit bounds the scratch buffer used to coalesce windowed rows into
// a single transfer. Larger windows fall back to one transfer per row.
const gatherLimit = 16 * 1024

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.readBusy()
	ctrl.sendCommand(swReset)
	ctrl.readBusy()

	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(0x80)

	ctrl.sendCommand(boosterSoftStartControl)
	ctrl.sendData([]byte{0xAE, 0xC7, 0xC3, 0xC0, 0x80})

	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{
		byte((opts.Height - 1) % 256),
		byte((opts.Height - 1) / 256),
		0x02,
	})

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendByte(0x01)

	// X increase, Y increase
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendByte(0x03)

	setWindow(ctrl, 0, 0, opts.Width-1, opts.Height-1)
	setCursor(ctrl, 0, 0)

	ctrl.readBusy()
}

func initDisplayFast(ctrl controller, opts *Opts) {
	initDisplay(ctrl, opts)

	// Prime a fixed compensation value instead of a sensor reading. It
	// stays loaded for every following fast refresh.
	ctrl.sendCommand(tempSensorRegWrite)
	ctrl.sendByte(0x5A)

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(updateLoadLUT)
	ctrl.sendCommand(masterActivation)
	ctrl.readBusy()
}

// turnOnDisplay runs a full display cycle with the factory OTP waveform.
func turnOnDisplay(ctrl controller) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(updateFull)
	ctrl.sendCommand(masterActivation)
	ctrl.readBusy()
}

// turnOnDisplayFast runs a display cycle with the waveform previously
// written to the LUT register.
func turnOnDisplayFast(ctrl controller) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(updateFast)
	ctrl.sendCommand(masterActivation)
	ctrl.readBusy()
}

// turnOnDisplayPart runs a partial display cycle diffing the current RAM
// bank against the previous-frame bank.
func turnOnDisplayPart(ctrl controller) {
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(updatePart)
	ctrl.sendCommand(masterActivation)
	ctrl.readBusy()
}

// setWindow sets the RAM window. X coordinates are in pixels; the
// controller ignores the low 3 bits, so callers align to 8 first.
func setWindow(ctrl controller, xStart, yStart, xEnd, yEnd int) {
	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte(xStart % 256), byte(xStart / 256),
		byte(xEnd % 256), byte(xEnd / 256),
	})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{
		byte(yStart % 256), byte(yStart / 256),
		byte(yEnd % 256), byte(yEnd / 256),
	})
}

// setCursor positions the RAM address counters.
func setCursor(ctrl controller, x, y int) {
	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{byte(x % 256), byte(x / 256)})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData([]byte{byte(y % 256), byte(y / 256)})
}

// clearRAM writes an all-white frame to both RAM banks without triggering
// a refresh.
func clearRAM(ctrl controller, opts *Opts) {
	blank := bytes.Repeat([]byte{0xFF}, opts.bufferLen())

	ctrl.sendCommand(writeRAMBW)
	ctrl.sendData(blank)
	ctrl.sendCommand(writeRAMRed)
	ctrl.sendData(blank)
}

// writeLUT programs the waveform LUT register followed by the voltage
// parameters carried in the same table.
func writeLUT(ctrl controller, lut LUT) {
	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut[:105])
	ctrl.readBusy()

	// VGH
	ctrl.sendCommand(gateDrivingVoltageControl)
	ctrl.sendByte(lut[105])

	// VSH1, VSH2, VSL
	ctrl.sendCommand(sourceDrivingVoltageControl)
	ctrl.sendData(lut[106:109])

	ctrl.sendCommand(vcomRegisterWrite)
	ctrl.sendByte(lut[109])
}

// readTemperature runs a measurement cycle on the internal sensor and
// returns whole degrees Celsius. The register holds a 12-bit signed value
// in units of 1/16 degC.
func readTemperature(ctrl controller) int {
	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(0x80)

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(updateMeasure)
	ctrl.sendCommand(masterActivation)
	ctrl.readBusy()

	var raw [2]byte
	ctrl.sendCommand(tempSensorRegRead)
	ctrl.readData(raw[:])

	v := int(int16(uint16(raw[0])<<8|uint16(raw[1]))) >> 4
	return v / 16
}

// alignWindow widens a physical window so both X edges land on byte
// boundaries.
func alignWindow(win image.Rectangle) image.Rectangle {
	win.Min.X -= win.Min.X % 8
	if win.Max.X%8 != 0 {
		win.Max.X += 8 - win.Max.X%8
	}
	return win
}

// drawPartialWindow writes the windowed framebuffer rows to the current RAM
// bank and triggers a partial refresh. The caller must have byte-aligned
// and clamped win and pulsed the hardware reset beforehand.
//
// Partial windows address RAM with Y decreasing, mirrored relative to the
// full-frame convention, so the window is set up from the reversed Y origin
// downwards.
func drawPartialWindow(ctrl controller, fb []byte, win image.Rectangle, lut LUT, opts *Opts) {
	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(0x80)

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendByte(0x80)

	// X increase, Y decrease
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendByte(0x01)

	yRev := opts.Height - win.Min.Y - win.Dy()
	setWindow(ctrl, win.Min.X, yRev+win.Dy()-1, win.Max.X-1, yRev)
	setCursor(ctrl, win.Min.X, yRev+win.Dy()-1)

	writeLUT(ctrl, lut)

	ctrl.sendCommand(writeRAMBW)
	sendWindowRows(ctrl, fb, win, opts)

	turnOnDisplayPart(ctrl)
}

// sendWindowRows transfers the framebuffer bytes covered by win, top row
// first. A window spanning the full row stride goes out as one contiguous
// block; narrower windows are gathered into a scratch buffer when small
// enough and streamed row by row otherwise.
func sendWindowRows(ctrl controller, fb []byte, win image.Rectangle, opts *Opts) {
	stride := (opts.Width + 7) / 8

	if win.Min.X == 0 && win.Max.X == opts.Width {
		ctrl.sendData(fb[win.Min.Y*stride : win.Max.Y*stride])
		return
	}

	first := win.Min.X / 8
	rowBytes := win.Dx() / 8

	if n := rowBytes * win.Dy(); n <= gatherLimit {
		buf := make([]byte, 0, n)
		for y := win.Min.Y; y < win.Max.Y; y++ {
			off := y*stride + first
			buf = append(buf, fb[off:off+rowBytes]...)
		}
		ctrl.sendData(buf)
		return
	}

	for y := win.Min.Y; y < win.Max.Y; y++ {
		off := y*stride + first
		ctrl.sendData(fb[off : off+rowBytes])
	}
}
