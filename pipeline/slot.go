// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pipeline

import "sync"

// requestSlot is a depth-1 request channel with overwrite semantics.
// Producers never block: a new request replaces the pending one, except
// that a pending Full request survives anything weaker. The consumer
// blocks on the wake channel until a request is present.
type requestSlot struct {
	mu      sync.Mutex
	mode    Mode
	pending bool

	wake chan struct{}
}

func newRequestSlot() *requestSlot {
	return &requestSlot{
		wake: make(chan struct{}, 1),
	}
}

// put stores a request, applying the sticky-Full overwrite rule.
func (s *requestSlot) put(m Mode) {
	s.mu.Lock()
	if !s.pending || s.mode != Full {
		s.mode = m
	}
	s.pending = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// take blocks until a request is pending or stop closes, whichever comes
// first.
func (s *requestSlot) take(stop <-chan struct{}) (Mode, bool) {
	for {
		s.mu.Lock()
		if s.pending {
			m := s.mode
			s.pending = false
			s.mu.Unlock()
			return m, true
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-stop:
			return 0, false
		}
	}
}

// drain discards any pending request without waking the consumer.
func (s *requestSlot) drain() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()

	select {
	case <-s.wake:
	default:
	}
}
