// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type Kind uint8

const (
	KindDefault Kind = iota
	KindNamed
	KindIndexed
	KindRGB
)

type RGB struct {
	R uint8
	G uint8
	B uint8
}

func (c RGB) Ref() Ref {
	return FromRGB(c.R, c.G, c.B)
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Ref is a color reference as written in a theme. The zero value is the
// terminal's own default color.
type Ref struct {
	Kind  Kind
	Index uint8
	RGB   RGB
}

func Named(index uint8) Ref {
	return Ref{Kind: KindNamed, Index: index & 0x0f}
}

func Indexed(index uint8) Ref {
	return Ref{Kind: KindIndexed, Index: index}
}

func FromRGB(r, g, b uint8) Ref {
	return Ref{Kind: KindRGB, RGB: RGB{R: r, G: g, B: b}}
}

var (
	Default       = Ref{}
	Black         = Named(0)
	Red           = Named(1)
	Green         = Named(2)
	Yellow        = Named(3)
	Blue          = Named(4)
	Magenta       = Named(5)
	Cyan          = Named(6)
	White         = Named(7)
	BrightBlack   = Named(8)
	BrightRed     = Named(9)
	BrightGreen   = Named(10)
	BrightYellow  = Named(11)
	BrightBlue    = Named(12)
	BrightMagenta = Named(13)
	BrightCyan    = Named(14)
	BrightWhite   = Named(15)
)

var namedColors = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func (r Ref) IsDefault() bool {
	return r.Kind == KindDefault
}

func (r Ref) String() string {
	switch r.Kind {
	case KindNamed:
		name := namedColors[r.Index&0x07]
		if r.Index >= 8 {
			return "bright-" + name
		}
		return name
	case KindIndexed:
		return fmt.Sprintf("Code256(%d)", r.Index)
	case KindRGB:
		return r.RGB.Hex()
	default:
		return "default"
	}
}

func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Ref) UnmarshalText(text []byte) error {
	parsed, err := ParseRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRef accepts the color spellings used in theme files: color names
// (with an optional bright- or light- prefix), Code256(n) or a bare index,
// #RRGGBB, and FullColor(r,g,b).
func ParseRef(value string) (Ref, error) {
	raw := strings.TrimSpace(value)
	lower := strings.ToLower(raw)
	switch lower {
	case "", "default", "none":
		return Default, nil
	}
	if strings.HasPrefix(lower, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return Ref{}, fmt.Errorf("invalid hex color %q", raw)
		}
		r, g, b := c.RGB255()
		return FromRGB(r, g, b), nil
	}
	if inner, ok := unwrapCall(lower, "code256"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(inner), 10, 8)
		if err != nil {
			return Ref{}, fmt.Errorf("invalid Code256 color %q", raw)
		}
		return Indexed(uint8(n)), nil
	}
	if inner, ok := unwrapCall(lower, "fullcolor"); ok {
		rgb, err := parseTriple(inner)
		if err != nil {
			return Ref{}, fmt.Errorf("invalid FullColor color %q: %w", raw, err)
		}
		return rgb.Ref(), nil
	}
	if n, err := strconv.ParseUint(lower, 10, 8); err == nil {
		return Indexed(uint8(n)), nil
	}
	name := strings.NewReplacer("-", "", "_", "", " ", "").Replace(lower)
	offset := uint8(0)
	for _, prefix := range []string{"bright", "light"} {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			offset = 8
			break
		}
	}
	for i, candidate := range namedColors {
		if candidate == name {
			return Named(uint8(i) + offset), nil
		}
	}
	return Ref{}, fmt.Errorf("unknown color %q", raw)
}

func unwrapCall(value, name string) (string, bool) {
	if !strings.HasPrefix(value, name+"(") || !strings.HasSuffix(value, ")") {
		return "", false
	}
	return value[len(name)+1 : len(value)-1], true
}

func parseTriple(value string) (RGB, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("expected r,g,b")
	}
	var channels [3]uint8
	for i, part := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return RGB{}, err
		}
		channels[i] = uint8(n)
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}
