// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type Styles struct {
	Enabled bool
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Running lipgloss.Style
	Stopped lipgloss.Style
}

type tokens struct {
	brand   string
	muted   string
	label   string
	value   string
	header  string
	error   string
	running string
}

var darkTokens = tokens{
	brand:   "213",
	muted:   "243",
	label:   "244",
	value:   "252",
	header:  "81",
	error:   "203",
	running: "77",
}

// StylesFor returns plain styles unless out is a color-capable terminal.
func StylesFor(out io.Writer) Styles {
	if !EnabledForOutput(out) {
		plain := lipgloss.NewStyle()
		return Styles{Header: plain, Label: plain, Value: plain, Muted: plain, Error: plain, Running: plain, Stopped: plain}
	}
	pal := darkTokens
	return Styles{
		Enabled: true,
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pal.header)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.label)),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.value)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.muted)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.error)),
		Running: lipgloss.NewStyle().Foreground(lipgloss.Color(pal.running)),
		Stopped: lipgloss.NewStyle().Foreground(lipgloss.Color(pal.muted)),
	}
}

func EnabledForOutput(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	termValue := os.Getenv("TERM")
	if termValue == "" || termValue == "dumb" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// HuhTheme styles the editor forms.
func HuhTheme() *huh.Theme {
	pal := darkTokens
	t := huh.ThemeBase()
	accent := lipgloss.Color(pal.brand)
	muted := lipgloss.Color(pal.muted)
	label := lipgloss.Color(pal.label)
	value := lipgloss.Color(pal.value)
	header := lipgloss.Color(pal.header)
	errColor := lipgloss.Color(pal.error)

	t.Group.Title = t.Group.Title.Foreground(header).Bold(true)
	t.Group.Description = t.Group.Description.Foreground(muted)
	t.FieldSeparator = lipgloss.NewStyle().SetString("\n\n")

	t.Focused.Title = t.Focused.Title.Foreground(label).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(label)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(value)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(accent)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(label)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(label)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	return t
}
