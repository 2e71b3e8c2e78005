// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt

import (
	"strings"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/layout"
	"github.com/shayne/infinite/internal/seq"
	"github.com/shayne/infinite/internal/theme"
)

// rowLine renders one framed row: cap, stroke, left side, filler, right
// side, stroke, cap. The first row uses the top corners, later rows the
// cross pieces.
func rowLine(row theme.Row, index int, left, right []string, width int) *seq.Builder {
	curve := row.Connection.Curve()
	stroke := curve.Horizontal
	leftCorner, rightCorner := curve.TopLeft, curve.TopRight
	if index > 0 {
		leftCorner, rightCorner = curve.CrossLeft, curve.CrossRight
	}

	total := len(left) + len(right)
	leftSide := renderSide(row, theme.SideLeft, left, 0, total)
	rightSide := renderSide(row, theme.SideRight, right, len(left), total)

	var caps []string
	if row.LeftCap {
		caps = append(caps, leftCorner)
	}
	if row.RightCap {
		caps = append(caps, rightCorner)
	}
	glyph := row.Connection.Glyph()
	// Strokes count toward each side and SideDecor reserves one more
	// connector, so the line stops a column short and zsh never wraps it.
	fill := layout.FillCount(layout.Measure{
		Left:      layout.StringWidth(stroke) + leftSide.Width(),
		Right:     rightSide.Width() + layout.StringWidth(stroke),
		Decor:     layout.SideDecor(glyph, caps...),
		Width:     width,
		Connector: layout.StringWidth(glyph),
	})

	b := seq.New().Fg(row.Color.Secondary)
	if row.LeftCap {
		b.Text(leftCorner)
	}
	b.Text(stroke).EndFg()
	b.Connect(leftSide)
	b.Fg(row.Color.Primary).Text(layout.Filler(glyph, fill)).EndFg()
	b.Connect(rightSide)
	b.Fg(row.Color.Secondary).Text(stroke)
	if row.RightCap {
		b.Text(rightCorner)
	}
	return b.EndFg()
}

// closingLine is the last line of the left prompt, where input begins.
func closingLine(row theme.Row) *seq.Builder {
	curve := row.Connection.Curve()
	b := seq.New().Fg(row.Color.Secondary)
	if row.LeftCap {
		b.Text(curve.BottomLeft)
	}
	return b.Text(curve.Horizontal).Text(" ").EndFg()
}

// fallbackLines is drawn when the theme has no rows. It is not fitted to
// the terminal width.
func fallbackLines() []*seq.Builder {
	row := theme.DefaultRow()
	curve := row.Connection.Curve()
	top := seq.New().Fg(row.Color.Secondary)
	if row.LeftCap {
		top.Text(curve.TopLeft)
	}
	top.Text(curve.Horizontal).Text(curve.Horizontal)
	if row.RightCap {
		top.Text(curve.TopRight)
	}
	top.EndFg()
	return []*seq.Builder{top, closingLine(row)}
}

// renderSide draws the segments of one side. Accent colors are sampled at
// the global index of each element so the progression spans the whole row.
func renderSide(row theme.Row, side theme.Side, values []string, offset, total int) *seq.Builder {
	if len(values) == 0 {
		return seq.New()
	}
	if row.AccentTarget == theme.AccentBackground {
		return renderSideBackground(row, side, values, offset, total)
	}
	return renderSideForeground(row, side, values, offset, total)
}

func accentAt(row theme.Row, index, total int) color.Ref {
	return color.Resolve(row.Color.Accent, color.Progress(index, total))
}

func pad(row theme.Row, value string) string {
	if row.Padding <= 0 {
		return value
	}
	space := strings.Repeat(" ", row.Padding)
	return space + value + space
}

// Segments sit on the scheme background; the accent colors the caps and
// the thin separators between segments.
func renderSideForeground(row theme.Row, side theme.Side, values []string, offset, total int) *seq.Builder {
	seps := row.Separators(side)
	bg := row.Color.Background
	fg := row.Color.Foreground
	b := seq.New()

	if row.Cap(side) {
		start := accentAt(row, offset, total)
		glyph := seps.Start.Box().Right
		b.Fg(start).BoldIf(seps.Bold, glyph).EndFg()
		b.Bg(start).Fg(bg).BoldIf(seps.Bold, glyph).EndFg().EndBg()
	}

	mid := seps.Mid.Line().Left
	if side == theme.SideRight {
		mid = seps.Mid.Line().Right
	}
	for i, value := range values {
		b.Bg(bg).Fg(fg).Text(pad(row, value)).EndFg()
		if i < len(values)-1 {
			b.Fg(accentAt(row, offset+i+1, total)).BoldIf(seps.Bold, mid).EndFg()
		}
		b.EndBg()
	}

	if row.Cap(side) {
		end := accentAt(row, offset+len(values), total)
		glyph := seps.End.Box().Left
		b.Bg(end).Fg(bg).BoldIf(seps.Bold, glyph).EndFg().EndBg()
		b.Fg(end).BoldIf(seps.Bold, glyph).EndFg()
	}
	return b
}

// Each segment takes its accent as background; the scheme background
// becomes the text color.
func renderSideBackground(row theme.Row, side theme.Side, values []string, offset, total int) *seq.Builder {
	seps := row.Separators(side)
	text := row.Color.Background
	b := seq.New()

	first := accentAt(row, offset, total)
	if row.Cap(side) {
		b.Fg(first).BoldIf(seps.Bold, seps.Start.Box().Right).EndFg()
	}

	current := first
	for i, value := range values {
		b.Bg(current).Fg(text).BoldIf(seps.Bold, pad(row, value)).EndFg().EndBg()
		if i == len(values)-1 {
			break
		}
		next := accentAt(row, offset+i+1, total)
		if side == theme.SideRight {
			b.Fg(next).Bg(current).BoldIf(seps.Bold, seps.Mid.Box().Right).EndBg().EndFg()
		} else {
			b.Fg(current).Bg(next).BoldIf(seps.Bold, seps.Mid.Box().Left).EndBg().EndFg()
		}
		current = next
	}

	if row.Cap(side) {
		b.Fg(current).BoldIf(seps.Bold, seps.End.Box().Left).EndFg()
	}
	return b
}
