// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package display holds the e-paper refresh stack: the gdeq0426 panel
// driver, the driver-agnostic refresh pipeline, and development panels
// (epdsim, termview) that stand in for real hardware.
package display
