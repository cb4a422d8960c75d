// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrameBufferStartsWhite(t *testing.T) {
	fb := NewFrameBuffer(16, 4, Rotate270)

	assert.Len(t, fb.Bytes(), 8)
	for i, b := range fb.Bytes() {
		assert.Equalf(t, byte(0xFF), b, "byte %d", i)
	}
}

func TestFrameBufferBounds(t *testing.T) {
	fb := NewFrameBuffer(800, 480, Rotate270)

	assert.Equal(t, image.Rect(0, 0, 480, 800), fb.Bounds())
	assert.Equal(t, image.Rect(0, 0, 800, 480), fb.PhysicalBounds())

	native := NewFrameBuffer(800, 480, Rotate0)
	assert.Equal(t, image.Rect(0, 0, 800, 480), native.Bounds())
}

func TestSetPixelRotate270(t *testing.T) {
	fb := NewFrameBuffer(16, 8, Rotate270)

	// Logical (1, 2) lands on physical (2, 6).
	fb.SetPixel(1, 2, true)

	idx := 6*2 + 0
	assert.Equal(t, byte(0xFF&^0x20), fb.Bytes()[idx])

	fb.SetPixel(1, 2, false)
	assert.Equal(t, byte(0xFF), fb.Bytes()[idx])
}

func TestSetPixelRotate0(t *testing.T) {
	fb := NewFrameBuffer(16, 8, Rotate0)

	fb.SetPixel(9, 3, true)

	idx := 3*2 + 1
	assert.Equal(t, byte(0xFF&^0x40), fb.Bytes()[idx])
}

func TestSetPixelOutOfRange(t *testing.T) {
	fb := NewFrameBuffer(16, 8, Rotate270)

	// Logical bounds are 8x16; all of these must be silent no-ops.
	fb.SetPixel(-1, 0, true)
	fb.SetPixel(0, -1, true)
	fb.SetPixel(8, 0, true)
	fb.SetPixel(0, 16, true)

	for i, b := range fb.Bytes() {
		assert.Equalf(t, byte(0xFF), b, "byte %d", i)
	}
}

func TestFill(t *testing.T) {
	fb := NewFrameBuffer(16, 2, Rotate270)

	fb.Fill(true)
	for _, b := range fb.Bytes() {
		assert.Equal(t, byte(0x00), b)
	}

	fb.Fill(false)
	for _, b := range fb.Bytes() {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestSnapshotCopies(t *testing.T) {
	fb := NewFrameBuffer(16, 2, Rotate270)

	snap := fb.Snapshot(nil)
	fb.Fill(true)

	assert.Equal(t, byte(0xFF), snap[0])
	assert.Equal(t, byte(0x00), fb.Bytes()[0])

	// Reusing the destination must not reallocate.
	snap2 := fb.Snapshot(snap)
	assert.Equal(t, byte(0x00), snap2[0])
}
