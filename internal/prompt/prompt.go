// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prompt renders the framed multi-row prompt for the shell.
package prompt

import (
	"context"
	"strings"
	"sync"

	"github.com/shayne/infinite/internal/layout"
	"github.com/shayne/infinite/internal/logger"
	"github.com/shayne/infinite/internal/seq"
	"github.com/shayne/infinite/internal/theme"
)

type Kind uint8

const (
	KindLeft Kind = iota
	KindRight
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Selector picks which prompt to render. ExitCode only matters for the
// transient prompt; only an explicit 0 counts as success.
type Selector struct {
	Kind     Kind
	ExitCode *int
}

func Left() Selector  { return Selector{Kind: KindLeft} }
func Right() Selector { return Selector{Kind: KindRight} }

func Transient(exitCode *int) Selector {
	return Selector{Kind: KindTransient, ExitCode: exitCode}
}

type Renderer struct {
	Theme theme.Theme
	// Source defaults to a LocalSource.
	Source Source
	// Width defaults to the terminal width.
	Width   int
	Dialect seq.Dialect
	Logger  *logger.Logger
}

// Render produces the text for sel. It never fails; missing segments are
// simply omitted.
func (r Renderer) Render(ctx context.Context, sel Selector) string {
	switch sel.Kind {
	case KindRight:
		return r.right().Build(r.Dialect)
	case KindTransient:
		return r.transient(sel.ExitCode).Build(r.Dialect)
	default:
		return r.left(ctx)
	}
}

func (r Renderer) left(ctx context.Context) string {
	rows := r.Theme.Rows
	if len(rows) == 0 {
		r.Logger.Debug("theme has no rows, drawing fallback prompt")
		return joinLines(fallbackLines(), r.Dialect)
	}
	width := r.Width
	if width <= 0 {
		width = layout.TerminalWidth()
	}
	lines := make([]*seq.Builder, 0, len(rows)+1)
	for i, row := range rows {
		left, right := r.fetch(ctx, i, row)
		lines = append(lines, rowLine(row, i, left, right, width))
	}
	lines = append(lines, closingLine(rows[len(rows)-1]))
	return joinLines(lines, r.Dialect)
}

// fetch evaluates both sides of a row concurrently.
func (r Renderer) fetch(ctx context.Context, index int, row theme.Row) (left, right []string) {
	source := r.Source
	if source == nil {
		source = LocalSource{}
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		left = source.Segments(ctx, index, theme.SideLeft, row.Left)
	}()
	go func() {
		defer wg.Done()
		right = source.Segments(ctx, index, theme.SideRight, row.Right)
	}()
	wg.Wait()
	return left, right
}

// right closes the frame opened by the last row's bottom-left corner, so it
// shares that row's color and curve.
func (r Renderer) right() *seq.Builder {
	scheme := r.Theme.Color
	curve := r.Theme.Curve()
	if n := len(r.Theme.Rows); n > 0 {
		scheme = r.Theme.Rows[n-1].Color
	}
	return seq.New().Fg(scheme.Secondary).Text(curve.Horizontal).Text(curve.BottomRight).EndFg()
}

func (r Renderer) transient(exitCode *int) *seq.Builder {
	c := r.Theme.Alert
	if exitCode != nil && *exitCode == 0 {
		c = r.Theme.Color.Primary
	}
	return seq.New().Reset().Fg(c).Text(r.Theme.Transient()).EndFg().Reset()
}

func joinLines(lines []*seq.Builder, d seq.Dialect) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Build(d)
	}
	return strings.Join(out, "\n")
}
