// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import "image"

// LogicalToPhysical maps a logical rectangle onto the panel's native
// coordinates. Rotate270 inverts the vertical axis, so the Y corners come
// out swapped and are put back in increasing order here; the result is
// clamped to the panel, never wrapped.
func (f *FrameBuffer) LogicalToPhysical(r image.Rectangle) image.Rectangle {
	var p image.Rectangle
	switch f.rot {
	case Rotate270:
		p = image.Rectangle{
			Min: image.Point{X: r.Min.Y, Y: f.physH - r.Max.X},
			Max: image.Point{X: r.Max.Y, Y: f.physH - r.Min.X},
		}
	default:
		p = r
	}
	return p.Intersect(f.PhysicalBounds())
}

// PhysicalToLogical is the inverse of LogicalToPhysical for in-bounds
// rectangles.
func (f *FrameBuffer) PhysicalToLogical(p image.Rectangle) image.Rectangle {
	var r image.Rectangle
	switch f.rot {
	case Rotate270:
		r = image.Rectangle{
			Min: image.Point{X: f.physH - p.Max.Y, Y: p.Min.X},
			Max: image.Point{X: f.physH - p.Min.Y, Y: p.Max.X},
		}
	default:
		r = p
	}
	return r.Intersect(f.Bounds())
}

// AlignX widens a physical rectangle so both X edges land on byte
// boundaries, matching the panel's byte-granular RAM addressing.
func AlignX(p image.Rectangle) image.Rectangle {
	p.Min.X -= p.Min.X % 8
	if p.Max.X%8 != 0 {
		p.Max.X += 8 - p.Max.X%8
	}
	return p
}
