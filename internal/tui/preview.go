// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/prompt"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/seq"
	"github.com/shayne/infinite/internal/theme"
)

const accentSamples = 16

// Preview draws th with placeholder segment text, followed by color
// swatches for every row. No segment commands are run.
func Preview(th theme.Theme, width int) string {
	r := prompt.Renderer{
		Theme:   th,
		Source:  prompt.SourceFunc(placeholders),
		Width:   width,
		Dialect: seq.ANSI,
	}
	left := r.Render(context.Background(), prompt.Left())
	right := r.Render(context.Background(), prompt.Right())
	lastLine := left[strings.LastIndex(left, "\n")+1:]
	gap := max(1, width-lipgloss.Width(lastLine)-lipgloss.Width(right)-1)

	var b strings.Builder
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteString("\n")
	for i, row := range th.Rows {
		fmt.Fprintf(&b, "\nrow %d  %s", i+1, Swatches(row.Color))
	}
	return b.String()
}

func placeholders(_ context.Context, _ int, _ theme.Side, specs []segment.Spec) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, Placeholder(spec))
	}
	return out
}

// Placeholder names a segment by the program it runs.
func Placeholder(spec segment.Spec) string {
	fields := spec.Command
	if isShell(spec) {
		fields = strings.Fields(spec.Command[2])
	}
	if len(fields) == 0 {
		return "?"
	}
	name := filepath.Base(fields[0])
	if len(name) > 12 {
		name = name[:12]
	}
	return name
}

// Swatches shows the scheme colors and a strip of the accent.
func Swatches(s theme.Scheme) string {
	parts := []string{
		swatch("bg", s.Background),
		swatch("fg", s.Foreground),
		swatch("primary", s.Primary),
		swatch("secondary", s.Secondary),
	}
	var strip strings.Builder
	for i := 0; i < accentSamples; i++ {
		ref := color.Resolve(s.Accent, color.Progress(i, accentSamples-1))
		strip.WriteString(swatchStyle(ref).Render(" "))
	}
	parts = append(parts, "accent "+strip.String())
	return strings.Join(parts, " ")
}

func swatch(label string, ref color.Ref) string {
	return swatchStyle(ref).Render(" " + label + " ")
}

func swatchStyle(ref color.Ref) lipgloss.Style {
	rgb, ok := ref.Approx()
	if !ok {
		return lipgloss.NewStyle().Reverse(true)
	}
	text := lipgloss.Color("#FFFFFF")
	if color.IsLight(rgb) {
		text = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(rgb.Hex())).Foreground(text)
}
