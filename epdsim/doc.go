// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdsim provides an in-memory e-paper panel for development and
// tests.
//
// The simulated panel keeps the controller's two RAM banks and the "glass"
// (the frame a viewer would see) as separate buffers, so the refresh
// semantics that matter on real hardware are observable: a full refresh
// rewrites both banks, a fast refresh leaves the previous-frame bank
// stale, and a partial refresh only touches the window and re-baselines it.
// Every draw call is recorded in a trace for scenario assertions, and an
// optional busy duration simulates the panel's refresh latency.
//
// Server exposes the glass over HTTP: a PNG snapshot endpoint and a
// websocket that pushes a frame after every completed refresh, for
// watching the pipeline work from a browser.
package epdsim
