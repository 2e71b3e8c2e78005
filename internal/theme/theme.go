// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/segment"
)

const DefaultTransientSymbol = "❯ "

type Scheme struct {
	Background color.Ref    `toml:"background"`
	Foreground color.Ref    `toml:"foreground"`
	Primary    color.Ref    `toml:"primary"`
	Secondary  color.Ref    `toml:"secondary"`
	Accent     color.Accent `toml:"accent"`
}

type SeparatorSet struct {
	Start Separator `toml:"start"`
	Mid   Separator `toml:"mid"`
	End   Separator `toml:"end"`
	Bold  bool      `toml:"bold"`
}

func UniformSeparators(s Separator) SeparatorSet {
	return SeparatorSet{Start: s, Mid: s, End: s}
}

// Row is one line of the left prompt.
type Row struct {
	Left            []segment.Spec `toml:"left" validate:"dive"`
	Right           []segment.Spec `toml:"right" validate:"dive"`
	Color           Scheme         `toml:"color"`
	Connection      Connection     `toml:"connection"`
	LeftSeparators  SeparatorSet   `toml:"left_separators"`
	RightSeparators SeparatorSet   `toml:"right_separators"`
	LeftCap         bool           `toml:"left_cap"`
	RightCap        bool           `toml:"right_cap"`
	AccentTarget    AccentTarget   `toml:"accent_target"`
	Padding         int            `toml:"padding" validate:"gte=0,lte=8"`
}

type Theme struct {
	Color           Scheme     `toml:"color"`
	Connection      Connection `toml:"connection"`
	Alert           color.Ref  `toml:"alert"`
	TransientSymbol string     `toml:"transient_symbol"`
	Rows            []Row      `toml:"rows" validate:"dive"`
}

func DefaultScheme() Scheme {
	return Scheme{
		Background: color.Black,
		Foreground: color.White,
		Primary:    color.Cyan,
		Secondary:  color.BrightBlack,
		Accent:     color.Gradient(),
	}
}

// DefaultRow shows user and host on the left, directory and last exit
// status on the right.
func DefaultRow() Row {
	return Row{
		Left: []segment.Spec{
			segment.Shell("whoami"),
			segment.Shell("hostname"),
		},
		Right: []segment.Spec{
			segment.Shell(`case "$PWD" in "$HOME"|"$HOME"/*) printf '~%s\n' "${PWD#"$HOME"}" ;; *) printf '%s\n' "$PWD" ;; esac`),
			segment.Shell(`echo "${INFINITE_EXIT_STATUS:-0}"`),
		},
		Color:           DefaultScheme(),
		Connection:      ConnectionLine,
		LeftSeparators:  UniformSeparators(SeparatorSharp),
		RightSeparators: UniformSeparators(SeparatorSharp),
		LeftCap:         true,
		RightCap:        true,
		AccentTarget:    AccentBackground,
		Padding:         1,
	}
}

func Default() Theme {
	return Theme{
		Color:           DefaultScheme(),
		Connection:      ConnectionLine,
		Alert:           color.Red,
		TransientSymbol: DefaultTransientSymbol,
		Rows:            []Row{DefaultRow()},
	}
}

// Curve is the frame of the last row, or of the global connection when the
// theme has no rows.
func (t Theme) Curve() CurveLine {
	if len(t.Rows) == 0 {
		return t.Connection.Curve()
	}
	return t.Rows[len(t.Rows)-1].Connection.Curve()
}

func (t Theme) Transient() string {
	if t.TransientSymbol == "" {
		return DefaultTransientSymbol
	}
	return t.TransientSymbol
}

// Side names one half of a row.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

func (r Row) Specs(side Side) []segment.Spec {
	if side == SideRight {
		return r.Right
	}
	return r.Left
}

func (r Row) Separators(side Side) SeparatorSet {
	if side == SideRight {
		return r.RightSeparators
	}
	return r.LeftSeparators
}

func (r Row) Cap(side Side) bool {
	if side == SideRight {
		return r.RightCap
	}
	return r.LeftCap
}
