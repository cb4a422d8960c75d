// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

// pixelBlack reads a physical pixel from the raw buffer.
func pixelBlack(fb *FrameBuffer, x, y int) bool {
	stride := (fb.PhysicalBounds().Dx() + 7) / 8
	return fb.Bytes()[y*stride+x/8]&(0x80>>(x%8)) == 0
}

func TestFillRectAndDirty(t *testing.T) {
	panel := newFakePanel(16, 8)
	p, _ := newTestPipeline(t, panel, Config{Rotation: Rotate0})

	p.FillRect(image.Rect(2, 1, 6, 3), true)

	for y := 1; y < 3; y++ {
		for x := 2; x < 6; x++ {
			assert.Truef(t, pixelBlack(p.fb, x, y), "pixel (%d,%d)", x, y)
		}
	}
	assert.False(t, pixelBlack(p.fb, 1, 1))
	assert.False(t, pixelBlack(p.fb, 6, 1))

	p.mu.Lock()
	rect, ok := p.dirty.snapshotAndClear()
	p.mu.Unlock()
	assert.True(t, ok)
	assert.Equal(t, image.Rect(2, 1, 6, 3), rect)
}

func TestDrawLinesAndRect(t *testing.T) {
	panel := newFakePanel(16, 8)
	p, _ := newTestPipeline(t, panel, Config{Rotation: Rotate0})

	p.DrawRect(image.Rect(1, 1, 6, 5), true)

	// Outline black, interior untouched.
	assert.True(t, pixelBlack(p.fb, 1, 1))
	assert.True(t, pixelBlack(p.fb, 5, 1))
	assert.True(t, pixelBlack(p.fb, 1, 4))
	assert.True(t, pixelBlack(p.fb, 5, 4))
	assert.False(t, pixelBlack(p.fb, 3, 3))

	p.DrawHLine(0, 7, 16, true)
	for x := 0; x < 16; x++ {
		assert.Truef(t, pixelBlack(p.fb, x, 7), "hline x=%d", x)
	}
}

func TestClear(t *testing.T) {
	panel := newFakePanel(16, 8)
	p, _ := newTestPipeline(t, panel, Config{Rotation: Rotate0})

	p.Clear(true)
	for _, b := range p.fb.Bytes() {
		assert.Equal(t, byte(0x00), b)
	}

	p.mu.Lock()
	rect, ok := p.dirty.snapshotAndClear()
	p.mu.Unlock()
	assert.True(t, ok)
	assert.Equal(t, p.Bounds(), rect)
}

func TestBlitBitmap(t *testing.T) {
	panel := newFakePanel(16, 8)
	p, _ := newTestPipeline(t, panel, Config{Rotation: Rotate0})

	// Two rows of 8 pixels: left half black then right half black.
	bits := []byte{0x0F, 0xF0}
	p.BlitBitmap(2, 1, 8, 2, bits)

	for x := 0; x < 8; x++ {
		assert.Equalf(t, x < 4, pixelBlack(p.fb, 2+x, 1), "row 0 x=%d", x)
		assert.Equalf(t, x >= 4, pixelBlack(p.fb, 2+x, 2), "row 1 x=%d", x)
	}

	// Short input is rejected without touching the buffer.
	p.Clear(false)
	p.BlitBitmap(0, 0, 16, 2, []byte{0x00})
	for _, b := range p.fb.Bytes() {
		assert.Equal(t, byte(0xFF), b)
	}
}

func TestDrawImageThreshold(t *testing.T) {
	panel := newFakePanel(16, 8)
	p, _ := newTestPipeline(t, panel, Config{Rotation: Rotate0})

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Pix = []byte{0, 127, 128, 255}

	p.DrawImage(image.Pt(4, 4), img)

	assert.True(t, pixelBlack(p.fb, 4, 4))
	assert.True(t, pixelBlack(p.fb, 5, 4))
	assert.False(t, pixelBlack(p.fb, 4, 5))
	assert.False(t, pixelBlack(p.fb, 5, 5))
}
