// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import (
	"image"
	"image/color"
)

// Drawing operations work in logical coordinates, hold the data lock for
// the duration of the call and record the touched region as dirty.

// SetPixel sets one logical pixel.
func (p *Pipeline) SetPixel(x, y int, black bool) {
	p.mu.Lock()
	p.fb.SetPixel(x, y, black)
	p.dirty.mark(image.Rect(x, y, x+1, y+1).Intersect(p.fb.Bounds()))
	p.mu.Unlock()
	p.maybeAutoRefresh()
}

// FillRect fills a logical rectangle.
func (p *Pipeline) FillRect(r image.Rectangle, black bool) {
	r = r.Intersect(p.fb.Bounds())
	if r.Empty() {
		return
	}

	p.mu.Lock()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.fb.SetPixel(x, y, black)
		}
	}
	p.dirty.mark(r)
	p.mu.Unlock()
	p.maybeAutoRefresh()
}

// DrawHLine draws a horizontal line of w pixels starting at (x, y).
func (p *Pipeline) DrawHLine(x, y, w int, black bool) {
	p.FillRect(image.Rect(x, y, x+w, y+1), black)
}

// DrawVLine draws a vertical line of h pixels starting at (x, y).
func (p *Pipeline) DrawVLine(x, y, h int, black bool) {
	p.FillRect(image.Rect(x, y, x+1, y+h), black)
}

// DrawRect draws a one-pixel rectangle outline.
func (p *Pipeline) DrawRect(r image.Rectangle, black bool) {
	p.DrawHLine(r.Min.X, r.Min.Y, r.Dx(), black)
	p.DrawHLine(r.Min.X, r.Max.Y-1, r.Dx(), black)
	p.DrawVLine(r.Min.X, r.Min.Y, r.Dy(), black)
	p.DrawVLine(r.Max.X-1, r.Min.Y, r.Dy(), black)
}

// Clear paints the whole canvas in one color and marks everything dirty.
func (p *Pipeline) Clear(black bool) {
	p.mu.Lock()
	p.fb.Fill(black)
	p.dirty.mark(p.fb.Bounds())
	p.mu.Unlock()
	p.maybeAutoRefresh()
}

// BlitBitmap copies a packed 1-bit bitmap (8 pixels per byte, MSB first,
// bit 1 = white, rows padded to whole bytes) to logical position (x, y).
func (p *Pipeline) BlitBitmap(x, y, w, h int, bits []byte) {
	stride := (w + 7) / 8
	if len(bits) < stride*h {
		return
	}

	p.mu.Lock()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			b := bits[row*stride+col/8]
			white := b&(0x80>>(col%8)) != 0
			p.fb.SetPixel(x+col, y+row, !white)
		}
	}
	p.dirty.mark(image.Rect(x, y, x+w, y+h).Intersect(p.fb.Bounds()))
	p.mu.Unlock()
	p.maybeAutoRefresh()
}

// DrawImage thresholds img to 1-bit and copies it to logical position at.
// Pixels with a gray value below 128 become black.
func (p *Pipeline) DrawImage(at image.Point, img image.Image) {
	b := img.Bounds()

	p.mu.Lock()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			p.fb.SetPixel(at.X+x-b.Min.X, at.Y+y-b.Min.Y, g.Y < 128)
		}
	}
	dst := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	p.dirty.mark(dst.Intersect(p.fb.Bounds()))
	p.mu.Unlock()
	p.maybeAutoRefresh()
}

func (p *Pipeline) maybeAutoRefresh() {
	if !p.autoRefresh {
		return
	}
	p.Refresh()
}
