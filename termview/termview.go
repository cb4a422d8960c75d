// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview renders e-paper frames to the terminal (stdout) using
// ANSI color codes.
//
// Useful while you are waiting for your panel to come by mail: it plugs
// into the refresh pipeline like a real display, downsampling each frame
// into character cells. Partial refreshes are drawn as full frames; the
// recorded window is still visible through the trailing status line.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for this display.
type Opts struct {
	// Width and Height are the simulated panel's physical size in
	// pixels.
	Width, Height int

	// CellW and CellH are how many pixels collapse into one character
	// cell. Zero means 4x8, roughly a terminal cell's aspect ratio.
	CellW, CellH int

	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	width   int
	height  int
	cellW   int
	cellH   int
	stride  int
	palette ansi256.Palette

	frame []byte
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	cw, ch := opts.CellW, opts.CellH
	if cw <= 0 {
		cw = 4
	}
	if ch <= 0 {
		ch = 8
	}

	d := &Dev{
		w:       colorable.NewColorableStdout(),
		width:   opts.Width,
		height:  opts.Height,
		cellW:   cw,
		cellH:   ch,
		stride:  (opts.Width + 7) / 8,
		palette: *p,
	}
	d.frame = make([]byte, d.stride*d.height)
	for i := range d.frame {
		d.frame[i] = 0xFF
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%dx%d}", d.width, d.height)
}

// Bounds returns the simulated physical panel area.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Halt implements conn.Resource. It resets the terminal colors so the
// shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// DrawFull displays the whole frame.
func (d *Dev) DrawFull(fb []byte) error {
	return d.draw(fb, "full", image.Rectangle{})
}

// DrawFast displays the whole frame.
func (d *Dev) DrawFast(fb []byte) error {
	return d.draw(fb, "fast", image.Rectangle{})
}

// DrawPartial displays the frame and reports the refreshed window in the
// status line.
func (d *Dev) DrawPartial(fb []byte, win image.Rectangle) error {
	return d.draw(fb, "partial", win)
}

func (d *Dev) draw(fb []byte, mode string, win image.Rectangle) error {
	if len(fb) != len(d.frame) {
		return fmt.Errorf("framebuffer length %d, want %d", len(fb), len(d.frame))
	}
	copy(d.frame, fb)
	return d.refresh(mode, win)
}

// cellColor averages a block of pixels into a gray level.
func (d *Dev) cellColor(cx, cy int) color.NRGBA {
	var sum, n int
	for y := cy * d.cellH; y < (cy+1)*d.cellH && y < d.height; y++ {
		for x := cx * d.cellW; x < (cx+1)*d.cellW && x < d.width; x++ {
			if d.frame[y*d.stride+x/8]&(0x80>>(x%8)) != 0 {
				sum += 0xFF
			}
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{A: 255}
	}
	g := byte(sum / n)
	return color.NRGBA{R: g, G: g, B: g, A: 255}
}

func (d *Dev) refresh(mode string, win image.Rectangle) error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H\033[0m")

	cols := (d.width + d.cellW - 1) / d.cellW
	rows := (d.height + d.cellH - 1) / d.cellH
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.cellColor(cx, cy)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}

	if win.Empty() {
		fmt.Fprintf(&d.buf, "\033[0m%s refresh\033[K\n", mode)
	} else {
		fmt.Fprintf(&d.buf, "\033[0m%s refresh %v\033[K\n", mode, win)
	}

	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
