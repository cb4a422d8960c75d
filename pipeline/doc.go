// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pipeline accumulates pixel writes into an off-screen 1-bit
// framebuffer and schedules refreshes of an e-paper panel.
//
// The UI layer draws through a Pipeline in logical (rotated) coordinates
// and requests a refresh when a frame is complete. A single consumer
// goroutine owns the panel: requests collapse into a depth-1 latest-wins
// slot (a pending full refresh is never downgraded), changed pixels are
// tracked as one dirty bounding rectangle, and repeated partial refreshes
// are periodically promoted to fast full refreshes to suppress ghosting.
//
// The panel itself is abstracted behind the Panel interface so the same
// pipeline drives real hardware (gdeq0426), the in-memory simulator
// (epdsim) or a terminal preview (termview).
package pipeline
