// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panelCall struct {
	mode Mode
	win  image.Rectangle
}

// fakePanel records every draw call. If gate is non-nil each call blocks
// until the test sends on it.
type fakePanel struct {
	mu     sync.Mutex
	bounds image.Rectangle
	calls  []panelCall
	gate   chan struct{}
}

func newFakePanel(w, h int) *fakePanel {
	return &fakePanel{bounds: image.Rect(0, 0, w, h)}
}

func (f *fakePanel) Bounds() image.Rectangle { return f.bounds }

func (f *fakePanel) record(mode Mode, win image.Rectangle) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.calls = append(f.calls, panelCall{mode: mode, win: win})
	f.mu.Unlock()
	return nil
}

func (f *fakePanel) DrawFull(fb []byte) error { return f.record(Full, image.Rectangle{}) }
func (f *fakePanel) DrawFast(fb []byte) error { return f.record(Fast, image.Rectangle{}) }
func (f *fakePanel) DrawPartial(fb []byte, win image.Rectangle) error {
	return f.record(Partial, win)
}

func (f *fakePanel) snapshot() []panelCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]panelCall(nil), f.calls...)
}

// newTestPipeline wires a pipeline to a fake panel with a completion
// channel so tests can wait for individual refreshes.
func newTestPipeline(t *testing.T, panel *fakePanel, cfg Config) (*Pipeline, chan Mode) {
	t.Helper()

	p := New(panel, cfg)
	t.Cleanup(func() { _ = p.Close() })

	completed := make(chan Mode, 16)
	p.OnRefreshComplete(func(m Mode) {
		completed <- m
	})

	return p, completed
}

func waitRefresh(t *testing.T, completed chan Mode) Mode {
	t.Helper()
	select {
	case m := <-completed:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh")
		return 0
	}
}

func TestFullRefresh(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	p.FillRect(image.Rect(0, 0, 4, 4), true)
	p.RequestRefresh(Full)

	assert.Equal(t, Full, waitRefresh(t, completed))
	require.Len(t, panel.snapshot(), 1)
	assert.Equal(t, Full, panel.snapshot()[0].mode)

	// FULL consumed the dirty state: a follow-up partial with no new
	// drawing re-baselines and then has nothing to send.
	p.RequestRefresh(Partial)
	assert.Equal(t, Fast, waitRefresh(t, completed))
}

func TestColdStartPartialBaselines(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	// First partial ever: no trusted previous-frame bank, so it must go
	// out as a fast full-frame send.
	p.SetPixel(1, 1, true)
	p.RequestRefresh(Partial)
	assert.Equal(t, Fast, waitRefresh(t, completed))

	// Second partial with fresh dirty pixels is a real window.
	p.FillRect(image.Rect(2, 4, 6, 12), true)
	p.RequestRefresh(Partial)
	assert.Equal(t, Partial, waitRefresh(t, completed))

	calls := panel.snapshot()
	require.Len(t, calls, 2)
	// Logical (2,4)-(6,12) under Rotate270 on a 32x16 panel, X widened
	// to byte boundaries.
	assert.Equal(t, image.Rect(0, 10, 16, 14), calls[1].win)
}

func TestPartialWithoutDirtyIsNoop(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	p.SetPixel(0, 0, true)
	p.RequestRefresh(Partial)
	assert.Equal(t, Fast, waitRefresh(t, completed))

	// Nothing drawn since the baseline: the request must not reach the
	// panel at all.
	p.RequestRefresh(Partial)

	p.RequestRefresh(Full)
	assert.Equal(t, Full, waitRefresh(t, completed))

	var modes []Mode
	for _, c := range panel.snapshot() {
		modes = append(modes, c.mode)
	}
	assert.Equal(t, []Mode{Fast, Full}, modes)
}

func TestPartialCounterWraps(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{
		Rotation:     Rotate270,
		PartialLimit: 3,
	})

	// Counter cycle with limit 3: baseline (count 1), partial (count 2),
	// partial (count wraps to 0), then the next partial re-baselines.
	want := []Mode{Fast, Partial, Partial, Fast}
	for i, wantMode := range want {
		p.SetPixel(i, i, true)
		p.RequestRefresh(Partial)
		assert.Equalf(t, wantMode, waitRefresh(t, completed), "refresh %d", i)
	}
}

func TestLargeDirtyWindowPromoted(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	p.SetPixel(0, 0, true)
	p.RequestRefresh(Partial)
	assert.Equal(t, Fast, waitRefresh(t, completed))

	// Dirty region covering more than 2/5 of the panel: sent as a fast
	// full refresh, and the counter resets so the next partial
	// re-baselines too.
	p.FillRect(image.Rect(0, 0, 16, 20), true)
	p.RequestRefresh(Partial)
	assert.Equal(t, Fast, waitRefresh(t, completed))

	p.SetPixel(1, 1, true)
	p.RequestRefresh(Partial)
	assert.Equal(t, Fast, waitRefresh(t, completed))
}

func TestResetRefreshStateDropsPendingWork(t *testing.T) {
	panel := newFakePanel(32, 16)
	panel.gate = make(chan struct{})
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	p.SetPixel(0, 0, true)
	p.RequestRefresh(Full)

	// The consumer is now blocked inside DrawFull. Queue a partial and
	// then abandon it, as a screen switch would.
	for !p.IsRefreshing() {
		time.Sleep(time.Millisecond)
	}
	p.SetPixel(2, 2, true)
	p.RequestRefresh(Partial)
	p.ResetRefreshState()

	panel.gate <- struct{}{}
	assert.Equal(t, Full, waitRefresh(t, completed))

	// Give the consumer a chance to (wrongly) pick up the dropped
	// request.
	time.Sleep(50 * time.Millisecond)
	require.Len(t, panel.snapshot(), 1)
}

func TestIsRefreshingDuringSend(t *testing.T) {
	panel := newFakePanel(32, 16)
	panel.gate = make(chan struct{})
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	assert.False(t, p.IsRefreshing())

	p.RequestRefresh(Full)
	for !p.IsRefreshing() {
		time.Sleep(time.Millisecond)
	}

	panel.gate <- struct{}{}
	waitRefresh(t, completed)

	for p.IsRefreshing() {
		time.Sleep(time.Millisecond)
	}
}

func TestRefreshProceedsPastOpenRenderPass(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{
		Rotation:   Rotate270,
		RenderWait: 50 * time.Millisecond,
	})

	// A render pass that never closes must only delay the refresh, not
	// block it.
	p.BeginFrame()
	defer p.EndFrame()

	p.RequestRefresh(Full)
	assert.Equal(t, Full, waitRefresh(t, completed))
}

func TestRefreshWaitsForRenderPass(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	p.BeginFrame()
	p.SetPixel(0, 0, true)
	p.RequestRefresh(Full)

	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, panel.snapshot())

	p.EndFrame()
	assert.Equal(t, Full, waitRefresh(t, completed))
}

func TestDefaultModeRefresh(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{Rotation: Rotate270})

	p.SetDefaultMode(Fast)
	p.Refresh()

	assert.Equal(t, Fast, waitRefresh(t, completed))
}

func TestAutoRefresh(t *testing.T) {
	panel := newFakePanel(32, 16)
	p, completed := newTestPipeline(t, panel, Config{
		Rotation:    Rotate270,
		AutoRefresh: true,
	})

	p.SetDefaultMode(Fast)
	p.SetPixel(3, 3, true)

	assert.Equal(t, Fast, waitRefresh(t, completed))
}
