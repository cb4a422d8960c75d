// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termview

import (
	"bytes"
	"image"
	"strings"
	"testing"
)

func TestDrawWritesANSI(t *testing.T) {
	d := New(&Opts{Width: 16, Height: 8, CellW: 4, CellH: 4})

	var out bytes.Buffer
	d.w = &out

	fb := make([]byte, 16)
	if err := d.DrawFull(fb); err != nil {
		t.Fatalf("DrawFull() failed: %v", err)
	}

	s := out.String()
	if !strings.Contains(s, "full refresh") {
		t.Errorf("output missing status line: %q", s)
	}
	if !strings.Contains(s, "\033[") {
		t.Error("output contains no ANSI escapes")
	}
}

func TestDrawPartialStatusLine(t *testing.T) {
	d := New(&Opts{Width: 16, Height: 8})

	var out bytes.Buffer
	d.w = &out

	win := image.Rect(0, 2, 8, 6)
	if err := d.DrawPartial(make([]byte, 16), win); err != nil {
		t.Fatalf("DrawPartial() failed: %v", err)
	}

	if !strings.Contains(out.String(), "partial refresh") {
		t.Errorf("output missing partial status: %q", out.String())
	}
}

func TestDrawRejectsBadLength(t *testing.T) {
	d := New(&Opts{Width: 16, Height: 8})

	if err := d.DrawFull(make([]byte, 3)); err == nil {
		t.Error("DrawFull() accepted a short framebuffer")
	}
}

func TestBounds(t *testing.T) {
	d := New(&Opts{Width: 800, Height: 480})

	if got := d.Bounds(); got != image.Rect(0, 0, 800, 480) {
		t.Errorf("Bounds() = %v", got)
	}
}
