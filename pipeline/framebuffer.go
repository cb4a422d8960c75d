// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import "image"

// Rotation describes how logical drawing coordinates map onto the panel's
// native landscape layout.
type Rotation uint8

const (
	// Rotate0 draws directly in the panel's native orientation.
	Rotate0 Rotation = iota
	// Rotate270 turns the panel into a portrait canvas: logical (x, y)
	// lands on physical (y, height-1-x).
	Rotate270
)

// FrameBuffer is an off-screen 1-bit image in the panel's physical layout:
// row-major, 8 pixels per byte, MSB first, bit 1 = white. Drawing happens
// in logical coordinates; the configured rotation is applied per pixel.
//
// FrameBuffer performs no locking. The Pipeline serializes access; callers
// using a FrameBuffer directly must do their own.
type FrameBuffer struct {
	physW  int
	physH  int
	stride int
	rot    Rotation
	buf    []byte
}

// NewFrameBuffer returns an all-white framebuffer for a panel of the given
// physical size.
func NewFrameBuffer(physW, physH int, rot Rotation) *FrameBuffer {
	f := &FrameBuffer{
		physW:  physW,
		physH:  physH,
		stride: (physW + 7) / 8,
		rot:    rot,
	}
	f.buf = make([]byte, f.stride*physH)
	f.Fill(false)
	return f
}

// Bounds returns the logical drawing area.
func (f *FrameBuffer) Bounds() image.Rectangle {
	if f.rot == Rotate270 {
		return image.Rect(0, 0, f.physH, f.physW)
	}
	return image.Rect(0, 0, f.physW, f.physH)
}

// PhysicalBounds returns the panel's native area.
func (f *FrameBuffer) PhysicalBounds() image.Rectangle {
	return image.Rect(0, 0, f.physW, f.physH)
}

// Rotation returns the configured logical-to-physical transform.
func (f *FrameBuffer) Rotation() Rotation {
	return f.rot
}

// SetPixel sets the logical pixel (x, y). Out-of-range coordinates are
// ignored.
func (f *FrameBuffer) SetPixel(x, y int, black bool) {
	px, py := x, y
	if f.rot == Rotate270 {
		px, py = y, f.physH-1-x
	}
	if px < 0 || px >= f.physW || py < 0 || py >= f.physH {
		return
	}

	idx := py*f.stride + px/8
	mask := byte(0x80) >> (px % 8)
	if black {
		f.buf[idx] &^= mask
	} else {
		f.buf[idx] |= mask
	}
}

// Fill paints the whole buffer in one color.
func (f *FrameBuffer) Fill(black bool) {
	b := byte(0xFF)
	if black {
		b = 0x00
	}
	for i := range f.buf {
		f.buf[i] = b
	}
}

// Bytes returns the raw physical-layout bits. The slice aliases the
// buffer; it must not be held across concurrent drawing.
func (f *FrameBuffer) Bytes() []byte {
	return f.buf
}

// Snapshot copies the buffer into dst, growing it if needed, and returns
// the copy.
func (f *FrameBuffer) Snapshot(dst []byte) []byte {
	if cap(dst) < len(f.buf) {
		dst = make([]byte, len(f.buf))
	}
	dst = dst[:len(f.buf)]
	copy(dst, f.buf)
	return dst
}
