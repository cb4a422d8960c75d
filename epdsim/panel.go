// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epdsim

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/quillreader/display/pipeline"
)

// Call is one recorded draw operation.
type Call struct {
	Mode pipeline.Mode
	// Win is the physical window of a partial refresh; zero for
	// full-frame operations.
	Win image.Rectangle
}

// Panel simulates an SSD1677-class e-paper display.
type Panel struct {
	w, h   int
	stride int

	// BusyDuration is slept inside every draw call, imitating the
	// panel's refresh latency. Zero makes draws instant.
	BusyDuration time.Duration

	mu        sync.Mutex
	bankCur   []byte // current image RAM
	bankPrev  []byte // previous frame RAM, diffed against by partials
	glass     []byte // what the viewer sees
	trace     []Call
	asleep    bool
	listeners map[chan struct{}]struct{}
}

// New returns a white panel of the given physical size.
func New(w, h int) *Panel {
	stride := (w + 7) / 8
	n := stride * h

	p := &Panel{
		w:         w,
		h:         h,
		stride:    stride,
		bankCur:   make([]byte, n),
		bankPrev:  make([]byte, n),
		glass:     make([]byte, n),
		listeners: map[chan struct{}]struct{}{},
	}
	for _, b := range [][]byte{p.bankCur, p.bankPrev, p.glass} {
		for i := range b {
			b[i] = 0xFF
		}
	}
	return p
}

// Bounds returns the physical panel area.
func (p *Panel) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.w, p.h)
}

func (p *Panel) checkFrame(fb []byte) error {
	if len(fb) != p.stride*p.h {
		return fmt.Errorf("framebuffer length %d, want %d", len(fb), p.stride*p.h)
	}
	return nil
}

// DrawFull writes fb to both RAM banks and displays it.
func (p *Panel) DrawFull(fb []byte) error {
	if err := p.checkFrame(fb); err != nil {
		return err
	}
	p.busy()

	p.mu.Lock()
	if p.asleep {
		p.mu.Unlock()
		return fmt.Errorf("panel is in deep sleep")
	}
	copy(p.bankCur, fb)
	copy(p.bankPrev, fb)
	copy(p.glass, fb)
	p.trace = append(p.trace, Call{Mode: pipeline.Full})
	p.notifyLocked()
	p.mu.Unlock()
	return nil
}

// DrawFast writes fb to the current bank only and displays it. The
// previous-frame bank keeps its old content, exactly like the hardware:
// a partial refresh after this would diff against stale data.
func (p *Panel) DrawFast(fb []byte) error {
	if err := p.checkFrame(fb); err != nil {
		return err
	}
	p.busy()

	p.mu.Lock()
	if p.asleep {
		p.mu.Unlock()
		return fmt.Errorf("panel is in deep sleep")
	}
	copy(p.bankCur, fb)
	copy(p.glass, fb)
	p.trace = append(p.trace, Call{Mode: pipeline.Fast})
	p.notifyLocked()
	p.mu.Unlock()
	return nil
}

// DrawPartial displays only the given window. The window must be
// byte-aligned on X, non-empty and inside the panel; the previous-frame
// bank is re-baselined for the window after the refresh, as the controller
// does.
func (p *Panel) DrawPartial(fb []byte, win image.Rectangle) error {
	if err := p.checkFrame(fb); err != nil {
		return err
	}
	if win.Empty() {
		return fmt.Errorf("empty partial window %v", win)
	}
	if !win.In(p.Bounds()) {
		return fmt.Errorf("partial window %v outside panel %v", win, p.Bounds())
	}
	if win.Min.X%8 != 0 || win.Max.X%8 != 0 {
		return fmt.Errorf("partial window %v not byte-aligned", win)
	}
	p.busy()

	p.mu.Lock()
	if p.asleep {
		p.mu.Unlock()
		return fmt.Errorf("panel is in deep sleep")
	}
	first := win.Min.X / 8
	rowBytes := win.Dx() / 8
	for y := win.Min.Y; y < win.Max.Y; y++ {
		off := y*p.stride + first
		copy(p.bankCur[off:off+rowBytes], fb[off:off+rowBytes])
		copy(p.glass[off:off+rowBytes], fb[off:off+rowBytes])
		copy(p.bankPrev[off:off+rowBytes], fb[off:off+rowBytes])
	}
	p.trace = append(p.trace, Call{Mode: pipeline.Partial, Win: win})
	p.notifyLocked()
	p.mu.Unlock()
	return nil
}

// Sleep puts the panel into deep sleep; draw calls fail until Wake.
func (p *Panel) Sleep() error {
	p.mu.Lock()
	p.asleep = true
	p.mu.Unlock()
	return nil
}

// Wake brings the panel back from deep sleep.
func (p *Panel) Wake() error {
	p.mu.Lock()
	p.asleep = false
	p.mu.Unlock()
	return nil
}

func (p *Panel) busy() {
	if p.BusyDuration > 0 {
		time.Sleep(p.BusyDuration)
	}
}

// Trace returns a copy of the recorded draw calls.
func (p *Panel) Trace() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.trace...)
}

// ResetTrace discards the recorded draw calls.
func (p *Panel) ResetTrace() {
	p.mu.Lock()
	p.trace = nil
	p.mu.Unlock()
}

// PrevBankStale reports whether the previous-frame bank differs from the
// displayed frame, the condition that makes the next partial refresh
// unreliable on real hardware.
func (p *Panel) PrevBankStale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.glass {
		if p.bankPrev[i] != p.glass[i] {
			return true
		}
	}
	return false
}

// Frame renders the glass into a grayscale image.
func (p *Panel) Frame() *image.Gray {
	img := image.NewGray(p.Bounds())

	p.mu.Lock()
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			if p.glass[y*p.stride+x/8]&(0x80>>(x%8)) != 0 {
				img.Pix[y*img.Stride+x] = 0xFF
			}
		}
	}
	p.mu.Unlock()
	return img
}

// Subscribe registers for refresh notifications. The returned channel
// receives an edge signal after every completed draw; the cancel function
// unregisters it.
func (p *Panel) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	p.mu.Lock()
	p.listeners[ch] = struct{}{}
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		delete(p.listeners, ch)
		p.mu.Unlock()
	}
	return ch, cancel
}

func (p *Panel) notifyLocked() {
	for ch := range p.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
