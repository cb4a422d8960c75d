// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Mode selects how a refresh drives the panel.
type Mode uint8

const (
	// Full rewrites both RAM banks and runs the slow flashing cycle.
	Full Mode = iota
	// Fast runs a quicker full-frame cycle without the flash.
	Fast
	// Partial drives only the dirty window, diffed against the previous
	// frame.
	Partial
)

func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Fast:
		return "fast"
	case Partial:
		return "partial"
	}
	return "unknown"
}

// Panel is the physical (or simulated) display driven by a Pipeline. The
// framebuffer slice passed to the draw calls is a snapshot owned by the
// pipeline consumer; implementations may read it for the duration of the
// call only.
type Panel interface {
	Bounds() image.Rectangle
	DrawFull(fb []byte) error
	DrawFast(fb []byte) error
	DrawPartial(fb []byte, win image.Rectangle) error
}

type sleeper interface {
	Sleep() error
	Wake() error
}

// Config carries the tunable pipeline parameters. The zero value selects
// the defaults.
type Config struct {
	// Rotation maps logical drawing coordinates onto the panel.
	Rotation Rotation

	// PartialLimit is how many consecutive partial refreshes may run
	// before the counter wraps and the next one re-baselines with a fast
	// full refresh. Zero means 10.
	PartialLimit int

	// RenderWait bounds how long a refresh waits for an in-flight render
	// frame before proceeding anyway. Zero means 200ms.
	RenderWait time.Duration

	// AutoRefresh requests a refresh in the default mode after every
	// drawing operation.
	AutoRefresh bool

	// Log receives refresh errors and scheduling warnings. Nil disables
	// logging.
	Log *zerolog.Logger
}

// Dirty windows covering more than promoteNum/promoteDen of the panel area
// are sent as fast full refreshes instead of partial windows.
const (
	promoteNum = 2
	promoteDen = 5
)

const renderPollInterval = 5 * time.Millisecond

// Pipeline owns a framebuffer, a dirty-region tracker and the single
// consumer goroutine that talks to the panel.
type Pipeline struct {
	panel Panel
	log   zerolog.Logger

	partialLimit int
	renderWait   time.Duration
	autoRefresh  bool

	mu           sync.Mutex // framebuffer, dirty state, counters, callback
	fb           *FrameBuffer
	dirty        dirtyTracker
	partialCount int
	defaultMode  Mode
	onComplete   func(Mode)

	slot       *requestSlot
	refreshing atomic.Bool
	renderBusy atomic.Int32

	stop chan struct{}
	done chan struct{}
	snap []byte
}

// New creates a pipeline for the given panel and starts its refresh
// goroutine. Call Close to stop it.
func New(panel Panel, cfg Config) *Pipeline {
	log := zerolog.Nop()
	if cfg.Log != nil {
		log = *cfg.Log
	}

	limit := cfg.PartialLimit
	if limit <= 0 {
		limit = 10
	}
	wait := cfg.RenderWait
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}

	b := panel.Bounds()
	p := &Pipeline{
		panel:        panel,
		log:          log,
		partialLimit: limit,
		renderWait:   wait,
		autoRefresh:  cfg.AutoRefresh,
		fb:           NewFrameBuffer(b.Dx(), b.Dy(), cfg.Rotation),
		defaultMode:  Partial,
		slot:         newRequestSlot(),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}

	go p.run()

	return p
}

// Close stops the refresh goroutine. A refresh in flight runs to
// completion first; pending requests are discarded.
func (p *Pipeline) Close() error {
	close(p.stop)
	<-p.done
	return nil
}

// Bounds returns the logical drawing area.
func (p *Pipeline) Bounds() image.Rectangle {
	return p.fb.Bounds()
}

// FrameBuffer exposes the underlying buffer for callers that render whole
// frames themselves. The buffer is shared with the refresh goroutine;
// access it only between BeginFrame and EndFrame, or while no refresh can
// be pending.
func (p *Pipeline) FrameBuffer() *FrameBuffer {
	return p.fb
}

// RequestRefresh queues a refresh. It never blocks: only the latest
// pending request is kept, except that a pending Full request is never
// downgraded.
func (p *Pipeline) RequestRefresh(mode Mode) {
	p.slot.put(mode)
}

// Refresh queues a refresh in the default mode.
func (p *Pipeline) Refresh() {
	p.mu.Lock()
	mode := p.defaultMode
	p.mu.Unlock()
	p.slot.put(mode)
}

// SetDefaultMode changes the mode used by Refresh and auto-refresh.
func (p *Pipeline) SetDefaultMode(mode Mode) {
	p.mu.Lock()
	p.defaultMode = mode
	p.mu.Unlock()
}

// ResetRefreshState clears the dirty region, the partial counter and any
// pending request. Used on screen transitions so a stale partial refresh
// cannot bleed into freshly drawn content.
func (p *Pipeline) ResetRefreshState() {
	p.mu.Lock()
	p.dirty.snapshotAndClear()
	p.partialCount = 0
	p.mu.Unlock()
	p.slot.drain()
}

// IsRefreshing reports whether the consumer is currently transmitting to
// the panel. UI layers poll this to avoid starting a render pass that
// would tear the frame being sent.
func (p *Pipeline) IsRefreshing() bool {
	return p.refreshing.Load()
}

// OnRefreshComplete registers a callback invoked after every refresh that
// reached the panel, with the mode actually used. The callback runs on the
// refresh goroutine.
func (p *Pipeline) OnRefreshComplete(fn func(Mode)) {
	p.mu.Lock()
	p.onComplete = fn
	p.mu.Unlock()
}

// BeginFrame marks the start of a multi-call render pass. A refresh
// dequeued while the pass is open waits up to the configured render wait
// before snapshotting the buffer.
func (p *Pipeline) BeginFrame() {
	p.renderBusy.Add(1)
}

// EndFrame closes a render pass opened with BeginFrame.
func (p *Pipeline) EndFrame() {
	p.renderBusy.Add(-1)
}

// Sleep puts the panel into deep sleep if it supports it.
func (p *Pipeline) Sleep() error {
	if s, ok := p.panel.(sleeper); ok {
		return s.Sleep()
	}
	return nil
}

// Wake brings the panel back from deep sleep if it supports it.
func (p *Pipeline) Wake() error {
	if s, ok := p.panel.(sleeper); ok {
		return s.Wake()
	}
	return nil
}

func (p *Pipeline) run() {
	defer close(p.done)

	for {
		mode, ok := p.slot.take(p.stop)
		if !ok {
			return
		}
		p.refresh(mode)
	}
}

// waitRenderIdle gives an in-flight render pass a bounded chance to finish
// before the buffer is snapshotted.
func (p *Pipeline) waitRenderIdle() {
	if p.renderBusy.Load() == 0 {
		return
	}
	deadline := time.Now().Add(p.renderWait)
	for p.renderBusy.Load() != 0 {
		if time.Now().After(deadline) {
			p.log.Warn().
				Dur("waited", p.renderWait).
				Msg("render pass still open, refreshing anyway")
			return
		}
		time.Sleep(renderPollInterval)
	}
}

// refresh dispatches one dequeued request. The data lock is held only
// while deciding and snapshotting; the panel transfer with its busy-wait
// runs on the consumer's private copy.
func (p *Pipeline) refresh(reqMode Mode) {
	p.refreshing.Store(true)
	defer p.refreshing.Store(false)

	p.waitRenderIdle()

	p.mu.Lock()

	sent := reqMode
	var win image.Rectangle

	switch reqMode {
	case Full, Fast:
		p.partialCount = 0
		p.dirty.snapshotAndClear()
	case Partial:
		if p.partialCount == 0 {
			// No trusted previous-frame bank yet: establish the
			// baseline with a fast full-frame send.
			sent = Fast
			p.partialCount = 1
			p.dirty.snapshotAndClear()
			break
		}

		rect, ok := p.dirty.snapshotAndClear()
		if !ok {
			p.mu.Unlock()
			return
		}

		win = AlignX(p.fb.LogicalToPhysical(rect))
		pb := p.fb.PhysicalBounds()
		if win.Dx()*win.Dy()*promoteDen > pb.Dx()*pb.Dy()*promoteNum {
			sent = Fast
			win = image.Rectangle{}
			p.partialCount = 0
			break
		}

		p.partialCount++
		if p.partialCount >= p.partialLimit {
			p.partialCount = 0
		}
	}

	p.snap = p.fb.Snapshot(p.snap)
	onComplete := p.onComplete
	p.mu.Unlock()

	var err error
	switch sent {
	case Full:
		err = p.panel.DrawFull(p.snap)
	case Fast:
		err = p.panel.DrawFast(p.snap)
	case Partial:
		err = p.panel.DrawPartial(p.snap, win)
	}
	if err != nil {
		p.log.Error().Err(err).Stringer("mode", sent).Msg("refresh failed")
	}

	if onComplete != nil {
		onComplete(sent)
	}
}
