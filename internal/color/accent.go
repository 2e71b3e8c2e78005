// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type AccentKind uint8

const (
	AccentFlat AccentKind = iota
	AccentRainbow
	AccentGradient
)

func (k AccentKind) String() string {
	switch k {
	case AccentRainbow:
		return "rainbow"
	case AccentGradient:
		return "gradient"
	default:
		return "flat"
	}
}

func (k AccentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AccentKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "flat", "single", "":
		*k = AccentFlat
	case "rainbow":
		*k = AccentRainbow
	case "gradient":
		*k = AccentGradient
	default:
		return fmt.Errorf("unknown accent kind %q", string(text))
	}
	return nil
}

// Stop is one gradient stop. Pos is in [0,1].
type Stop struct {
	Color RGB
	Pos   float64 `validate:"gte=0,lte=1"`
}

func (s Stop) String() string {
	return s.Color.Hex() + ":" + strconv.FormatFloat(s.Pos, 'f', -1, 64)
}

func (s Stop) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stop) UnmarshalText(text []byte) error {
	parsed, err := ParseStop(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStop parses "#RRGGBB:pos".
func ParseStop(value string) (Stop, error) {
	colorPart, posPart, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return Stop{}, fmt.Errorf("invalid gradient stop %q: expected color:position", value)
	}
	ref, err := ParseRef(colorPart)
	if err != nil {
		return Stop{}, fmt.Errorf("invalid gradient stop %q: %w", value, err)
	}
	if ref.Kind != KindRGB {
		return Stop{}, fmt.Errorf("invalid gradient stop %q: color must be RGB", value)
	}
	pos, err := strconv.ParseFloat(strings.TrimSpace(posPart), 64)
	if err != nil {
		return Stop{}, fmt.Errorf("invalid gradient stop %q: %w", value, err)
	}
	return Stop{Color: ref.RGB, Pos: pos}, nil
}

// Accent is the color source sampled across the segments of a row.
type Accent struct {
	Kind     AccentKind `toml:"kind"`
	Color    Ref        `toml:"color,omitempty"`
	StartHue float64    `toml:"start_hue,omitempty" validate:"gte=0,lt=360"`
	Stops    []Stop     `toml:"stops,omitempty" validate:"dive"`
}

func Flat(ref Ref) Accent {
	return Accent{Kind: AccentFlat, Color: ref}
}

func Rainbow(startHue float64) Accent {
	return Accent{Kind: AccentRainbow, StartHue: startHue}
}

func Gradient(stops ...Stop) Accent {
	return Accent{Kind: AccentGradient, Stops: stops}
}

// DefaultRainbowStops is the red to violet gradient used when a gradient
// accent has no stops of its own.
func DefaultRainbowStops() []Stop {
	return []Stop{
		{Color: RGB{255, 0, 0}, Pos: 0},
		{Color: RGB{255, 127, 0}, Pos: 0.16},
		{Color: RGB{255, 255, 0}, Pos: 0.32},
		{Color: RGB{0, 255, 0}, Pos: 0.48},
		{Color: RGB{0, 0, 255}, Pos: 0.64},
		{Color: RGB{75, 0, 130}, Pos: 0.80},
		{Color: RGB{148, 0, 211}, Pos: 1.0},
	}
}

// Resolve samples the accent at progress, clamped to [0,1].
func Resolve(a Accent, progress float64) Ref {
	p := clamp01(progress)
	switch a.Kind {
	case AccentRainbow:
		hue := math.Mod(a.StartHue+p*360, 360)
		if hue < 0 {
			hue += 360
		}
		return HSLToRGB(hue, 1, 0.5).Ref()
	case AccentGradient:
		stops := a.Stops
		if len(stops) == 0 {
			stops = DefaultRainbowStops()
		}
		return sampleStops(stops, p).Ref()
	default:
		return a.Color
	}
}

func sampleStops(stops []Stop, p float64) RGB {
	first, last := stops[0], stops[len(stops)-1]
	if p <= first.Pos {
		return first.Color
	}
	if p >= last.Pos {
		return last.Color
	}
	for i := 0; i < len(stops)-1; i++ {
		lo, hi := stops[i], stops[i+1]
		if p < lo.Pos || p > hi.Pos {
			continue
		}
		span := hi.Pos - lo.Pos
		if span <= 0 {
			return hi.Color
		}
		blended := lo.Color.colorful().BlendRgb(hi.Color.colorful(), (p-lo.Pos)/span)
		r, g, b := blended.RGB255()
		return RGB{R: r, G: g, B: b}
	}
	return last.Color
}

// Progress maps a segment index onto the accent range.
func Progress(i, total int) float64 {
	return float64(i) / float64(max(1, total))
}

// ValidateStops reports the first stop whose position goes backwards.
func ValidateStops(stops []Stop) error {
	for i := 1; i < len(stops); i++ {
		if stops[i].Pos < stops[i-1].Pos {
			return fmt.Errorf("gradient stop %d at %v precedes stop %d at %v", i, stops[i].Pos, i-1, stops[i-1].Pos)
		}
	}
	return nil
}
