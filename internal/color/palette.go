// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package color

var xterm16 = []RGB{
	{R: 0, G: 0, B: 0},       // 0 black
	{R: 128, G: 0, B: 0},     // 1 maroon
	{R: 0, G: 128, B: 0},     // 2 green
	{R: 128, G: 128, B: 0},   // 3 olive
	{R: 0, G: 0, B: 128},     // 4 navy
	{R: 128, G: 0, B: 128},   // 5 purple
	{R: 0, G: 128, B: 128},   // 6 teal
	{R: 192, G: 192, B: 192}, // 7 silver
	{R: 128, G: 128, B: 128}, // 8 grey
	{R: 255, G: 0, B: 0},     // 9 red
	{R: 0, G: 255, B: 0},     // 10 lime
	{R: 255, G: 255, B: 0},   // 11 yellow
	{R: 0, G: 0, B: 255},     // 12 blue
	{R: 255, G: 0, B: 255},   // 13 fuchsia
	{R: 0, G: 255, B: 255},   // 14 aqua
	{R: 255, G: 255, B: 255}, // 15 white
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Approx returns the RGB a typical xterm palette shows for r. Default maps
// to black, which callers treat as "unknown".
func (r Ref) Approx() (RGB, bool) {
	switch r.Kind {
	case KindNamed:
		return xterm16[r.Index&0x0f], true
	case KindIndexed:
		return indexedRGB(r.Index), true
	case KindRGB:
		return r.RGB, true
	default:
		return RGB{}, false
	}
}

func indexedRGB(index uint8) RGB {
	switch {
	case index < 16:
		return xterm16[index]
	case index < 232:
		n := index - 16
		return RGB{R: cubeLevels[n/36], G: cubeLevels[(n/6)%6], B: cubeLevels[n%6]}
	default:
		level := 8 + (index-232)*10
		return RGB{R: level, G: level, B: level}
	}
}

func IsLight(c RGB) bool {
	luma := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	return luma >= 128.0
}
