// Copyright 2026 The Quillreader Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gdeq0426

// Waveform tables for five temperature bands plus the fast-refresh table.
// The voltage pulse timings vary with panel temperature; colder panels need
// longer, stronger drive cycles. Values come from the panel vendor and must
// not be edited.

// lutForTemperature selects the waveform for a full or partial refresh at
// the given temperature in degrees Celsius. The fast table is never chosen
// here; it is tied to the fast refresh mode instead.
func lutForTemperature(t int) LUT {
	switch {
	case t <= 5:
		return lutBelow5
	case t <= 10:
		return lut5to10
	case t <= 15:
		return lut10to15
	case t <= 20:
		return lut15to20
	default:
		return lut20to80
	}
}

// 0..5 degC
var lutBelow5 = LUT{
	0xAA, 0x48, 0x55, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x55, 0x48, 0xAA, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xAA, 0x48, 0x55, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x55, 0x48, 0xAA, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x1E, 0x23, 0x21, 0x23, 0x00,
	0x28, 0x01, 0x28, 0x01, 0x03,
	0x1B, 0x19, 0x05, 0x03, 0x01,
	0x05, 0x00, 0x08, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x22, 0x22, 0x22, 0x22, 0x22,
	0x17, 0x41, 0xA8, 0x32, 0x48,
	0x00, 0x00,
}

// 5..10 degC
var lut5to10 = LUT{
	0xAA, 0x48, 0x55, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x55, 0x48, 0xAA, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xAA, 0x48, 0x55, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x55, 0x48, 0xAA, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x1E, 0x23, 0x05, 0x02, 0x00,
	0x2B, 0x01, 0x2B, 0x01, 0x02,
	0x1B, 0x19, 0x05, 0x03, 0x00,
	0x05, 0x00, 0x07, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x22, 0x22, 0x22, 0x22, 0x22,
	0x17, 0x41, 0xA8, 0x32, 0x48,
	0x00, 0x00,
}

// 10..15 degC
var lut10to15 = LUT{
	0xAA, 0x48, 0x55, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x55, 0x48, 0xAA, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xAA, 0x48, 0x55, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x55, 0x48, 0xAA, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x14, 0x1A, 0x0B, 0x06, 0x00,
	0x21, 0x01, 0x21, 0x01, 0x02,
	0x18, 0x16, 0x05, 0x03, 0x00,
	0x04, 0x00, 0x05, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x22, 0x22, 0x22, 0x22, 0x22,
	0x17, 0x41, 0xA8, 0x32, 0x48,
	0x00, 0x00,
}

// 15..20 degC
var lut15to20 = LUT{
	0xA2, 0x48, 0x51, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x54, 0x48, 0xA8, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xA2, 0x48, 0x51, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x54, 0x48, 0xA8, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x0D, 0x0D, 0x08, 0x05, 0x00,
	0x0F, 0x01, 0x0F, 0x01, 0x04,
	0x0D, 0x0D, 0x05, 0x05, 0x00,
	0x03, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x01,
	0x22, 0x22, 0x22, 0x22, 0x22,
	0x17, 0x41, 0xA8, 0x32, 0x48,
	0x00, 0x00,
}

// 20..80 degC
var lut20to80 = LUT{
	0xA0, 0x48, 0x54, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x50, 0x48, 0xA8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xA0, 0x48, 0x54, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x50, 0x48, 0xA8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x1A, 0x14, 0x00, 0x00, 0x00,
	0x0D, 0x01, 0x0D, 0x01, 0x02,
	0x0A, 0x0A, 0x03, 0x00, 0x01,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x01,
	0x22, 0x22, 0x22, 0x22, 0x22,
	0x17, 0x41, 0xA8, 0x32, 0x48,
	0x00, 0x00,
}

// 80..127 degC, fast refresh
var lutFast = LUT{
	0xA8, 0x00, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x54, 0x00, 0xAA, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xA8, 0x00, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x54, 0x00, 0xAA, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x0C, 0x0D, 0x0B, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x0A, 0x0A, 0x05, 0x0B, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x01, 0x01,
	0x22, 0x22, 0x22, 0x22, 0x22,
	0x17, 0x41, 0xA8, 0x32, 0x30,
	0x00, 0x00,
}
