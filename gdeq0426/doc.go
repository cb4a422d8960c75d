// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gdeq0426 controls Good Display GDEQ0426T82 4.26" e-paper panels.
//
// Datasheet:
// https://www.good-display.com/product/457.html
//
// The panel is an 800x480 black/white Active Matrix Electrophoretic Display
// driven by an SSD1677-class controller over a 4-wire SPI bus with a BUSY
// line. The controller keeps two full-frame RAM banks: the image being
// displayed and the previous frame, which partial refreshes diff against.
// Three refresh paths are supported: a full refresh with a flash cycle
// (cleanest, slowest), a fast full refresh, and a windowed partial refresh
// that only drives the pixels inside a byte-aligned rectangle.
//
// Waveform lookup tables for five temperature bands plus a dedicated fast
// table are compiled in and uploaded before refreshes that need temperature
// compensation. The panel's internal temperature sensor is read through the
// same command interface.
package gdeq0426
