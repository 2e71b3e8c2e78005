// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const DefaultWidth = 80

// Measure holds the display widths that share one terminal line.
type Measure struct {
	Left      int
	Right     int
	Decor     int
	Width     int
	Connector int
}

// FillCount is the number of connector glyphs that fit between the two
// sides. It is never negative.
func FillCount(m Measure) int {
	connector := m.Connector
	if connector < 1 {
		connector = 1
	}
	free := m.Width - m.Left - m.Right - m.Decor
	if free <= 0 {
		return 0
	}
	return free / connector
}

// SideDecor is the width of the enabled caps plus one connector glyph.
func SideDecor(connector string, caps ...string) int {
	width := StringWidth(connector)
	for _, c := range caps {
		width += StringWidth(c)
	}
	return width
}

func Filler(connector string, n int) string {
	if n <= 0 || connector == "" {
		return ""
	}
	return strings.Repeat(connector, n)
}

func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TerminalWidth returns the column count of the first terminal among fds,
// then $COLUMNS, then DefaultWidth.
func TerminalWidth(fds ...uintptr) int {
	if len(fds) == 0 {
		fds = []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	}
	for _, fd := range fds {
		if !term.IsTerminal(int(fd)) {
			continue
		}
		if width, _, err := term.GetSize(int(fd)); err == nil && width > 0 {
			return width
		}
	}
	if width, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}
