// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import "image"

// dirtyTracker accumulates the bounding rectangle of all pixels changed
// since the last refresh. It is owned by the Pipeline and accessed under
// the same mutex as the framebuffer.
type dirtyTracker struct {
	rect  image.Rectangle
	valid bool
}

// mark grows the dirty region to cover r. Empty rectangles are ignored.
func (t *dirtyTracker) mark(r image.Rectangle) {
	if r.Empty() {
		return
	}
	if !t.valid {
		t.rect = r
		t.valid = true
		return
	}
	t.rect = t.rect.Union(r)
}

// snapshotAndClear returns the accumulated region and resets the tracker.
func (t *dirtyTracker) snapshotAndClear() (image.Rectangle, bool) {
	r, ok := t.rect, t.valid
	t.rect = image.Rectangle{}
	t.valid = false
	return r, ok
}
