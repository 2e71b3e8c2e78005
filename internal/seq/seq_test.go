// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shayne/infinite/internal/color"
)

func TestFgRoundTripRestoresAmbient(t *testing.T) {
	for _, text := range []string{"", "hello", "100%", "日本"} {
		inner := New().Fg(color.Red).Text(text).EndFg()
		got := New().Fg(color.Blue).Connect(inner).Text("tail").EndFg().Build(Zsh)
		want := "%F{4}%F{1}" + strings.ReplaceAll(text, "%", "%%") + "%f%F{4}tail%f"
		assert.Equal(t, want, got, "text %q", text)
	}
}

func TestEndWithoutAmbientOnlyResets(t *testing.T) {
	assert.Equal(t, "%F{1}x%f", New().Fg(color.Red).Text("x").EndFg().String())
	assert.Equal(t, "%K{#0a0b0c}x%k", New().Bg(color.FromRGB(10, 11, 12)).Text("x").EndBg().String())
}

func TestNestedBackgroundRestore(t *testing.T) {
	b := New().Bg(color.Indexed(17)).Bg(color.Green).Text("a").EndBg().Text("b").EndBg()
	assert.Equal(t, "%K{17}%K{2}a%k%K{17}b%k", b.Build(Zsh))
	assert.Equal(t, "\x1b[48;5;17m\x1b[42ma\x1b[49m\x1b[48;5;17mb\x1b[49m", b.Build(ANSI))
}

func TestUnbalancedEndsDegrade(t *testing.T) {
	b := New().EndFg().EndBg().EndBold().Text("x").EndFg()
	assert.Equal(t, "%f%k%bx%f", b.String())
}

func TestBoldDepth(t *testing.T) {
	b := New().Bold().Bold().Text("x").EndBold().Text("y").EndBold()
	assert.Equal(t, "%Bxy%b", b.String())
}

func TestResetClearsStacks(t *testing.T) {
	b := New().Fg(color.Red).Bold().Reset().Text("x").EndFg()
	assert.Equal(t, "%F{1}%B%f%k%b%u%sx%f", b.String())
	assert.Equal(t, "\x1b[31m\x1b[1m\x1b[0mx\x1b[39m", b.Build(ANSI))
}

func TestDefaultColorInsideStack(t *testing.T) {
	b := New().Fg(color.Default).Fg(color.Red).Text("x").EndFg()
	assert.Equal(t, "%f%F{1}x%f", b.String())
}

func TestANSIColors(t *testing.T) {
	assert.Equal(t, "\x1b[91m", New().Fg(color.BrightRed).Build(ANSI))
	assert.Equal(t, "\x1b[38;2;1;2;3m", New().Fg(color.FromRGB(1, 2, 3)).Build(ANSI))
	assert.Equal(t, "\x1b[107m", New().Bg(color.BrightWhite).Build(ANSI))
	assert.Equal(t, "100%", New().Text("100%").Build(ANSI))
}

func TestWidth(t *testing.T) {
	b := New().Fg(color.Red).Text("ab").Text("日本").BoldIf(true, "─").EndFg()
	assert.Equal(t, 7, b.Width())
	assert.Equal(t, 0, New().Width())
}

func TestConnectDoesNotAlias(t *testing.T) {
	a := New().Text("a")
	b := New().Text("b")
	a.Connect(b)
	b.Text("c")
	assert.Equal(t, "ab", a.Build(Zsh))
	assert.Equal(t, "ab", a.Connect(nil).Build(Zsh))
}
