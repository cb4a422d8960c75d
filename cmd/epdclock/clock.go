// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"os"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// clockFace renders a digital clock into an image sized for the panel.
type clockFace struct {
	w, h     int
	timeFace font.Face
	dateFace font.Face
}

// newClockFace prepares faces for a w by h frame. fontPath may be empty,
// in which case a built-in bitmap font is used.
func newClockFace(w, h int, fontPath string) (*clockFace, error) {
	c := &clockFace{
		w:        w,
		h:        h,
		timeFace: basicfont.Face7x13,
		dateFace: basicfont.Face7x13,
	}
	if fontPath == "" {
		return c, nil
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}

	// Scale with the shorter edge so portrait and landscape both fit.
	short := w
	if h < short {
		short = h
	}
	c.timeFace = truetype.NewFace(f, &truetype.Options{Size: float64(short) / 3})
	c.dateFace = truetype.NewFace(f, &truetype.Options{Size: float64(short) / 12})
	return c, nil
}

// Render draws the given time as HH:MM over the date.
func (c *clockFace) Render(now time.Time) image.Image {
	dc := gg.NewContext(c.w, c.h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	cx, cy := float64(c.w)/2, float64(c.h)/2

	dc.SetFontFace(c.timeFace)
	dc.DrawStringAnchored(now.Format("15:04"), cx, cy, 0.5, 0.5)

	dc.SetFontFace(c.dateFace)
	dc.DrawStringAnchored(now.Format("Monday, January 2"), cx, cy+float64(c.h)/4, 0.5, 0.5)

	return dc.Image()
}
