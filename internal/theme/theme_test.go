// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/segment"
)

func TestDefaultThemeIsValid(t *testing.T) {
	th := Default()
	require.NoError(t, th.Validate())
	require.Len(t, th.Rows, 1)
	assert.Len(t, th.Rows[0].Left, 2)
	assert.Len(t, th.Rows[0].Right, 2)
	assert.Equal(t, []string{"sh", "-c", "whoami"}, th.Rows[0].Left[0].Command)
	assert.Equal(t, DefaultTransientSymbol, th.Transient())
}

func TestValidateRejectsEmptyCommand(t *testing.T) {
	th := Default()
	th.Rows[0].Left = append(th.Rows[0].Left, segment.Spec{})
	err := th.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "rows[0].left[2].command", ve.Field)

	th = Default()
	th.Rows[0].Right[0] = segment.Spec{Command: []string{"  "}}
	assert.Error(t, th.Validate())
}

func TestValidateGradientStops(t *testing.T) {
	th := Default()
	th.Rows[0].Color.Accent = color.Gradient(
		color.Stop{Color: color.RGB{R: 1}, Pos: 0.6},
		color.Stop{Color: color.RGB{G: 1}, Pos: 0.2},
	)
	err := th.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "rows[0].color.accent.stops", ve.Field)

	th = Default()
	th.Color.Accent = color.Gradient(color.Stop{Pos: 1.5})
	assert.Error(t, th.Validate())

	th = Default()
	th.Color.Accent = color.Gradient()
	assert.NoError(t, th.Validate())
}

func TestValidateStartHue(t *testing.T) {
	th := Default()
	th.Color.Accent = color.Rainbow(360)
	assert.Error(t, th.Validate())
}

func TestSeparatorGlyphs(t *testing.T) {
	assert.Equal(t, GlyphPair{Left: "\uE0B0", Right: "\uE0B2"}, SeparatorSharp.Box())
	assert.Equal(t, GlyphPair{Left: "\uE0B5", Right: "\uE0B7"}, SeparatorRound.Line())
	assert.Equal(t, GlyphPair{Left: "▓▒░", Right: "░▒▓"}, SeparatorBlur.Box())
	assert.Equal(t, SeparatorSharp.Box(), Separator(200).Box())
	assert.Len(t, Separators(), 10)
}

func TestConnectionCurves(t *testing.T) {
	assert.Equal(t, "╔", ConnectionDouble.Curve().TopLeft)
	assert.Equal(t, "┛", ConnectionBar.Curve().BottomRight)
	assert.Equal(t, "┌", ConnectionDashed.Curve().TopLeft)
	assert.Equal(t, "─", ConnectionDashed.Curve().Horizontal)
	assert.Equal(t, "╌", ConnectionDashed.Glyph())
	wave := ConnectionWave.Curve()
	assert.Equal(t, "╭", wave.TopLeft)
	assert.Equal(t, "~", wave.Horizontal)
	assert.Equal(t, " ", ConnectionNone.Curve().Horizontal)
	assert.Len(t, Connections(), 12)
}

func TestEnumText(t *testing.T) {
	var s Separator
	require.NoError(t, s.UnmarshalText([]byte("BackSlash")))
	assert.Equal(t, SeparatorBackSlash, s)
	assert.Error(t, s.UnmarshalText([]byte("zigzag")))

	var c Connection
	require.NoError(t, c.UnmarshalText([]byte("ZigZag")))
	assert.Equal(t, ConnectionZigZag, c)
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "zigzag", string(text))

	var a AccentTarget
	require.NoError(t, a.UnmarshalText([]byte("BackGround")))
	assert.Equal(t, AccentBackground, a)
	assert.Error(t, a.UnmarshalText([]byte("sideways")))
}

func TestThemeCurveFollowsLastRow(t *testing.T) {
	th := Default()
	second := DefaultRow()
	second.Connection = ConnectionDouble
	th.Rows = append(th.Rows, second)
	assert.Equal(t, "╝", th.Curve().BottomRight)

	th.Rows = nil
	th.Connection = ConnectionBold
	assert.Equal(t, "┛", th.Curve().BottomRight)
}
