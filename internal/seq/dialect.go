// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seq

import (
	"fmt"
	"strings"

	"github.com/shayne/infinite/internal/color"
)

type Dialect uint8

const (
	// Zsh emits prompt escapes (%F, %K, %B) for PROMPT and RPROMPT.
	Zsh Dialect = iota
	// ANSI emits SGR sequences for direct terminal output.
	ANSI
)

func (d Dialect) String() string {
	if d == ANSI {
		return "ansi"
	}
	return "zsh"
}

type writer interface {
	fg(color.Ref) string
	bg(color.Ref) string
	bold() string
	endBold() string
	reset() string
	literal(string) string
}

func writerFor(d Dialect) writer {
	if d == ANSI {
		return ansiWriter{}
	}
	return zshWriter{}
}

type zshWriter struct{}

func (zshWriter) fg(c color.Ref) string {
	if c.IsDefault() {
		return "%f"
	}
	return "%F{" + zshColor(c) + "}"
}

func (zshWriter) bg(c color.Ref) string {
	if c.IsDefault() {
		return "%k"
	}
	return "%K{" + zshColor(c) + "}"
}

func (zshWriter) bold() string    { return "%B" }
func (zshWriter) endBold() string { return "%b" }
func (zshWriter) reset() string   { return "%f%k%b%u%s" }

func (zshWriter) literal(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

func zshColor(c color.Ref) string {
	switch c.Kind {
	case color.KindRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.RGB.R, c.RGB.G, c.RGB.B)
	default:
		return fmt.Sprintf("%d", c.Index)
	}
}

type ansiWriter struct{}

func (ansiWriter) fg(c color.Ref) string { return sgr(ansiColor(c, 30, 90, 38, 39)) }
func (ansiWriter) bg(c color.Ref) string { return sgr(ansiColor(c, 40, 100, 48, 49)) }
func (ansiWriter) bold() string          { return sgr("1") }
func (ansiWriter) endBold() string       { return sgr("22") }
func (ansiWriter) reset() string         { return sgr("0") }

func (ansiWriter) literal(s string) string { return s }

func sgr(code string) string {
	return "\x1b[" + code + "m"
}

func ansiColor(c color.Ref, base, bright, extended, reset int) string {
	switch c.Kind {
	case color.KindNamed:
		if c.Index >= 8 {
			return fmt.Sprintf("%d", bright+int(c.Index-8))
		}
		return fmt.Sprintf("%d", base+int(c.Index))
	case color.KindIndexed:
		return fmt.Sprintf("%d;5;%d", extended, c.Index)
	case color.KindRGB:
		return fmt.Sprintf("%d;2;%d;%d;%d", extended, c.RGB.R, c.RGB.G, c.RGB.B)
	default:
		return fmt.Sprintf("%d", reset)
	}
}
