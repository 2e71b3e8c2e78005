// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillCountExactFitIsZero(t *testing.T) {
	m := Measure{Left: 30, Right: 20, Decor: 3, Connector: 1}
	m.Width = m.Left + m.Right + m.Decor
	assert.Equal(t, 0, FillCount(m))
}

func TestFillCountNeverNegative(t *testing.T) {
	for _, width := range []int{0, 10, 52} {
		assert.Equal(t, 0, FillCount(Measure{Left: 30, Right: 20, Decor: 3, Width: width, Connector: 1}))
	}
}

func TestFillCountTruncates(t *testing.T) {
	assert.Equal(t, 47, FillCount(Measure{Left: 10, Right: 20, Decor: 3, Width: 80, Connector: 1}))
	assert.Equal(t, 23, FillCount(Measure{Left: 10, Right: 20, Decor: 3, Width: 80, Connector: 2}))
	assert.Equal(t, 47, FillCount(Measure{Left: 10, Right: 20, Decor: 3, Width: 80}))
}

func TestSideDecor(t *testing.T) {
	assert.Equal(t, 1, SideDecor("─"))
	assert.Equal(t, 3, SideDecor("─", "╭", "╮"))
	assert.Equal(t, 4, SideDecor("日", "╭", "╮"))
}

func TestFiller(t *testing.T) {
	assert.Equal(t, "───", Filler("─", 3))
	assert.Equal(t, "", Filler("─", 0))
	assert.Equal(t, "", Filler("─", -2))
	assert.Equal(t, "", Filler("", 4))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("日本"))
	assert.Equal(t, 0, StringWidth(""))
}

func TestTerminalWidthFromPTY(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()
	defer slave.Close()
	require.NoError(t, pty.Setsize(slave, &pty.Winsize{Rows: 24, Cols: 132}))
	assert.Equal(t, 132, TerminalWidth(slave.Fd()))
}

func TestTerminalWidthFallsBackToColumns(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notty")
	require.NoError(t, err)
	defer f.Close()

	t.Setenv("COLUMNS", "101")
	assert.Equal(t, 101, TerminalWidth(f.Fd()))

	t.Setenv("COLUMNS", "wide")
	assert.Equal(t, DefaultWidth, TerminalWidth(f.Fd()))

	t.Setenv("COLUMNS", "-4")
	assert.Equal(t, DefaultWidth, TerminalWidth(f.Fd()))
}
