// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/theme"
)

func TestRowDraftRoundTrip(t *testing.T) {
	row := theme.DefaultRow()
	row.Left = append(row.Left, segment.Spec{Command: []string{"git", "branch", "--show-current"}})
	row.Color.Accent = color.Gradient(
		color.Stop{Color: color.RGB{R: 255}, Pos: 0},
		color.Stop{Color: color.RGB{B: 255}, Pos: 1},
	)

	got, err := newRowDraft(row).row()
	require.NoError(t, err)
	assert.Equal(t, row, got)
}

func TestRowDraftEdits(t *testing.T) {
	draft := newRowDraft(theme.DefaultRow())
	draft.Left = "whoami\n\n  date +%H:%M  \n"
	draft.Padding = "3"
	draft.Scheme.AccentKind = color.AccentRainbow
	draft.Scheme.StartHue = "120"

	row, err := draft.row()
	require.NoError(t, err)
	assert.Equal(t, []segment.Spec{segment.Shell("whoami"), segment.Shell("date +%H:%M")}, row.Left)
	assert.Equal(t, 3, row.Padding)
	assert.Equal(t, color.Rainbow(120), row.Color.Accent)

	draft.Padding = "9"
	_, err = draft.row()
	assert.Error(t, err)

	draft.Padding = "1"
	draft.Scheme.Primary = "not-a-color"
	_, err = draft.row()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary")
}

func TestThemeDraftApply(t *testing.T) {
	th := theme.Default()
	draft := newThemeDraft(th)
	draft.Alert = "#ff5f5f"
	draft.Transient = "> "
	draft.Connection = theme.ConnectionDouble
	require.NoError(t, draft.apply(&th))

	assert.Equal(t, color.FromRGB(0xff, 0x5f, 0x5f), th.Alert)
	assert.Equal(t, "> ", th.TransientSymbol)
	assert.Equal(t, theme.ConnectionDouble, th.Connection)
	assert.Len(t, th.Rows, 1)

	draft.Alert = "nope"
	assert.Error(t, draft.apply(&th))
}

func TestParseSegmentsKeepsUnchangedArgv(t *testing.T) {
	prev := []segment.Spec{{Command: []string{"uptime", "-p"}}, segment.Shell("echo hi")}
	text := formatSegments(prev)
	assert.Equal(t, "uptime -p\necho hi", text)
	assert.Equal(t, prev, parseSegments(text, prev))

	got := parseSegments("uptime -p\necho bye", prev)
	assert.Equal(t, []segment.Spec{prev[0], segment.Shell("echo bye")}, got)
	assert.Equal(t, []segment.Spec{}, parseSegments("  \n", prev))
}

func TestParseStops(t *testing.T) {
	stops, err := parseStops("#FF0000:0, #0000FF:1")
	require.NoError(t, err)
	assert.Equal(t, []color.Stop{{Color: color.RGB{R: 255}, Pos: 0}, {Color: color.RGB{B: 255}, Pos: 1}}, stops)
	assert.Equal(t, "#FF0000:0 #0000FF:1", formatStops(stops))

	stops, err = parseStops("")
	require.NoError(t, err)
	assert.Empty(t, stops)

	_, err = parseStops("#FF0000:0.5 #0000FF:0.2")
	assert.Error(t, err)
	_, err = parseStops("red:0")
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateColor("bright-blue"))
	assert.Error(t, validateColor("blurple"))
	assert.NoError(t, validateHue(""))
	assert.NoError(t, validateHue("359.5"))
	assert.Error(t, validateHue("360"))
	assert.NoError(t, validatePadding("0"))
	assert.Error(t, validatePadding("-1"))
	assert.Error(t, validatePadding("x"))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "whoami", Placeholder(segment.Shell("whoami")))
	assert.Equal(t, "git", Placeholder(segment.Spec{Command: []string{"/usr/bin/git", "status"}}))
	assert.Equal(t, "averyverylon", Placeholder(segment.Shell("averyverylongcommand")))
	assert.Equal(t, "?", Placeholder(segment.Shell("  ")))
}

func TestPreviewShowsPlaceholdersAndSwatches(t *testing.T) {
	th := theme.Default()
	out := Preview(th, 60)
	assert.Contains(t, out, " whoami ")
	assert.Contains(t, out, " hostname ")
	assert.Contains(t, out, "row 1")
	assert.Contains(t, out, " secondary ")
	assert.Contains(t, out, th.Curve().BottomRight)

	th.Rows = nil
	out = Preview(th, 60)
	assert.NotContains(t, out, "row 1")
}

func TestMenuOptions(t *testing.T) {
	th := theme.Default()
	th.Rows = append(th.Rows, theme.DefaultRow())
	options := menuOptions(th)
	values := make([]string, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{actionGlobal, "row:0", "row:1", actionAdd, actionRemove, actionSave, actionDiscard}, values)
	assert.True(t, strings.HasPrefix(options[1].Key, "Row 1: 2 segments left, 2 segments right"))

	th.Rows = nil
	assert.Len(t, menuOptions(th), 4)
}

func TestCloneThemeIsIndependent(t *testing.T) {
	th := theme.Default()
	clone := cloneTheme(th)
	clone.Rows[0].Left[0] = segment.Shell("id -un")
	clone.Rows = append(clone.Rows, theme.DefaultRow())
	assert.Equal(t, segment.Shell("whoami"), th.Rows[0].Left[0])
	assert.Len(t, th.Rows, 1)
}

func TestStylesForBuffer(t *testing.T) {
	styles := StylesFor(&bytes.Buffer{})
	assert.False(t, styles.Enabled)
	assert.Equal(t, "running", styles.Running.Render("running"))
	assert.NotNil(t, HuhTheme())
}
