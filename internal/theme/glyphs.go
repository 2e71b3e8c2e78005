// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"fmt"
	"strings"
)

type GlyphPair struct {
	Left  string
	Right string
}

type Separator uint8

const (
	SeparatorBlock Separator = iota
	SeparatorSharp
	SeparatorSlash
	SeparatorBackSlash
	SeparatorRound
	SeparatorBlur
	SeparatorFlame
	SeparatorPixel
	SeparatorWave
	SeparatorLego
)

var separatorNames = []string{"block", "sharp", "slash", "backslash", "round", "blur", "flame", "pixel", "wave", "lego"}

// Powerline glyphs: box is the filled form, line the thin form.
var separatorGlyphs = [][2]GlyphPair{
	SeparatorBlock:     {{" ", " "}, {"|", "|"}},
	SeparatorSharp:     {{"\uE0B0", "\uE0B2"}, {"\uE0B1", "\uE0B3"}},
	SeparatorSlash:     {{"\uE0BC", "\uE0BA"}, {"╱", "╱"}},
	SeparatorBackSlash: {{"\uE0B8", "\uE0BE"}, {"╲", "╲"}},
	SeparatorRound:     {{"\uE0B4", "\uE0B6"}, {"\uE0B5", "\uE0B7"}},
	SeparatorBlur:      {{"▓▒░", "░▒▓"}, {"░", "░"}},
	SeparatorFlame:     {{"\uE0C0", "\uE0C2"}, {"\uE0C1", "\uE0C3"}},
	SeparatorPixel:     {{"\uE0C6", "\uE0C7"}, {"\uE0C4", "\uE0C5"}},
	SeparatorWave:      {{"\uE0C8", "\uE0CA"}, {"\uE0C9", "\uE0CB"}},
	SeparatorLego:      {{"\uE0B0", "\uE0B2"}, {"\uE0B1", "\uE0B3"}},
}

func Separators() []Separator {
	out := make([]Separator, len(separatorNames))
	for i := range out {
		out[i] = Separator(i)
	}
	return out
}

func (s Separator) valid() bool {
	return int(s) < len(separatorNames)
}

func (s Separator) Box() GlyphPair {
	if !s.valid() {
		s = SeparatorSharp
	}
	return separatorGlyphs[s][0]
}

func (s Separator) Line() GlyphPair {
	if !s.valid() {
		s = SeparatorSharp
	}
	return separatorGlyphs[s][1]
}

func (s Separator) String() string {
	if !s.valid() {
		return fmt.Sprintf("separator(%d)", uint8(s))
	}
	return separatorNames[s]
}

func (s Separator) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid separator %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Separator) UnmarshalText(text []byte) error {
	idx, err := lookupName(separatorNames, string(text), "separator")
	if err != nil {
		return err
	}
	*s = Separator(idx)
	return nil
}

type Connection uint8

const (
	ConnectionNone Connection = iota
	ConnectionLine
	ConnectionDouble
	ConnectionBold
	ConnectionDashed
	ConnectionDotted
	ConnectionDot
	ConnectionBullet
	ConnectionWave
	ConnectionZigZag
	ConnectionBar
	ConnectionGradient
)

var connectionNames = []string{"none", "line", "double", "bold", "dashed", "dotted", "dot", "bullet", "wave", "zigzag", "bar", "gradient"}

var connectionGlyphs = []string{" ", "─", "═", "━", "╌", "┄", "·", "•", "~", "≈", "█", "▒"}

func Connections() []Connection {
	out := make([]Connection, len(connectionNames))
	for i := range out {
		out[i] = Connection(i)
	}
	return out
}

func (c Connection) valid() bool {
	return int(c) < len(connectionNames)
}

// Glyph is the filler repeated between the left and right sides.
func (c Connection) Glyph() string {
	if !c.valid() {
		return " "
	}
	return connectionGlyphs[c]
}

func (c Connection) String() string {
	if !c.valid() {
		return fmt.Sprintf("connection(%d)", uint8(c))
	}
	return connectionNames[c]
}

func (c Connection) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("invalid connection %d", uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Connection) UnmarshalText(text []byte) error {
	idx, err := lookupName(connectionNames, string(text), "connection")
	if err != nil {
		return err
	}
	*c = Connection(idx)
	return nil
}

// CurveLine holds the box-drawing frame around the rows.
type CurveLine struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
	CrossLeft   string
	CrossRight  string
}

func RoundCurve() CurveLine {
	return CurveLine{
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
		Horizontal:  "─",
		Vertical:    "│",
		CrossLeft:   "├",
		CrossRight:  "┤",
	}
}

func (c Connection) Curve() CurveLine {
	switch c {
	case ConnectionDouble:
		return CurveLine{TopLeft: "╔", TopRight: "╗", BottomLeft: "╚", BottomRight: "╝", Horizontal: "═", Vertical: "║", CrossLeft: "╠", CrossRight: "╣"}
	case ConnectionBold, ConnectionBar:
		return CurveLine{TopLeft: "┏", TopRight: "┓", BottomLeft: "┗", BottomRight: "┛", Horizontal: "━", Vertical: "┃", CrossLeft: "┣", CrossRight: "┫"}
	case ConnectionLine, ConnectionDashed, ConnectionDotted:
		return CurveLine{TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘", Horizontal: "─", Vertical: "│", CrossLeft: "├", CrossRight: "┤"}
	default:
		curve := RoundCurve()
		curve.Horizontal = c.Glyph()
		return curve
	}
}

type AccentTarget uint8

const (
	AccentForeground AccentTarget = iota
	AccentBackground
)

func (a AccentTarget) String() string {
	if a == AccentBackground {
		return "background"
	}
	return "foreground"
}

func (a AccentTarget) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccentTarget) UnmarshalText(text []byte) error {
	switch normalizeName(string(text)) {
	case "foreground", "fg":
		*a = AccentForeground
	case "background", "bg":
		*a = AccentBackground
	default:
		return fmt.Errorf("unknown accent target %q", string(text))
	}
	return nil
}

func lookupName(names []string, value, kind string) (int, error) {
	want := normalizeName(value)
	for i, name := range names {
		if name == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (expected one of: %s)", kind, value, strings.Join(names, ", "))
}

func normalizeName(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(value)
}
