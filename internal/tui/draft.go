// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/theme"
)

// Form fields edit strings; drafts convert between them and theme values.

type schemeDraft struct {
	Background  string
	Foreground  string
	Primary     string
	Secondary   string
	AccentKind  color.AccentKind
	AccentColor string
	StartHue    string
	Stops       string
}

func newSchemeDraft(s theme.Scheme) schemeDraft {
	return schemeDraft{
		Background:  s.Background.String(),
		Foreground:  s.Foreground.String(),
		Primary:     s.Primary.String(),
		Secondary:   s.Secondary.String(),
		AccentKind:  s.Accent.Kind,
		AccentColor: s.Accent.Color.String(),
		StartHue:    strconv.FormatFloat(s.Accent.StartHue, 'f', -1, 64),
		Stops:       formatStops(s.Accent.Stops),
	}
}

func (d schemeDraft) scheme() (theme.Scheme, error) {
	var s theme.Scheme
	var err error
	for _, f := range []struct {
		name  string
		value string
		dst   *color.Ref
	}{
		{"background", d.Background, &s.Background},
		{"foreground", d.Foreground, &s.Foreground},
		{"primary", d.Primary, &s.Primary},
		{"secondary", d.Secondary, &s.Secondary},
	} {
		if *f.dst, err = color.ParseRef(f.value); err != nil {
			return theme.Scheme{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	s.Accent.Kind = d.AccentKind
	switch d.AccentKind {
	case color.AccentFlat:
		if s.Accent.Color, err = color.ParseRef(d.AccentColor); err != nil {
			return theme.Scheme{}, fmt.Errorf("accent color: %w", err)
		}
	case color.AccentRainbow:
		if s.Accent.StartHue, err = parseHue(d.StartHue); err != nil {
			return theme.Scheme{}, err
		}
	case color.AccentGradient:
		if s.Accent.Stops, err = parseStops(d.Stops); err != nil {
			return theme.Scheme{}, err
		}
	}
	return s, nil
}

type rowDraft struct {
	Left            string
	Right           string
	Scheme          schemeDraft
	Connection      theme.Connection
	LeftSeparators  theme.SeparatorSet
	RightSeparators theme.SeparatorSet
	LeftCap         bool
	RightCap        bool
	AccentTarget    theme.AccentTarget
	Padding         string

	prevLeft  []segment.Spec
	prevRight []segment.Spec
}

func newRowDraft(r theme.Row) rowDraft {
	return rowDraft{
		Left:            formatSegments(r.Left),
		Right:           formatSegments(r.Right),
		Scheme:          newSchemeDraft(r.Color),
		Connection:      r.Connection,
		LeftSeparators:  r.LeftSeparators,
		RightSeparators: r.RightSeparators,
		LeftCap:         r.LeftCap,
		RightCap:        r.RightCap,
		AccentTarget:    r.AccentTarget,
		Padding:         strconv.Itoa(r.Padding),
		prevLeft:        r.Left,
		prevRight:       r.Right,
	}
}

func (d rowDraft) row() (theme.Row, error) {
	scheme, err := d.Scheme.scheme()
	if err != nil {
		return theme.Row{}, err
	}
	padding, err := parsePadding(d.Padding)
	if err != nil {
		return theme.Row{}, err
	}
	return theme.Row{
		Left:            parseSegments(d.Left, d.prevLeft),
		Right:           parseSegments(d.Right, d.prevRight),
		Color:           scheme,
		Connection:      d.Connection,
		LeftSeparators:  d.LeftSeparators,
		RightSeparators: d.RightSeparators,
		LeftCap:         d.LeftCap,
		RightCap:        d.RightCap,
		AccentTarget:    d.AccentTarget,
		Padding:         padding,
	}, nil
}

type themeDraft struct {
	Scheme     schemeDraft
	Connection theme.Connection
	Alert      string
	Transient  string
}

func newThemeDraft(t theme.Theme) themeDraft {
	return themeDraft{
		Scheme:     newSchemeDraft(t.Color),
		Connection: t.Connection,
		Alert:      t.Alert.String(),
		Transient:  t.TransientSymbol,
	}
}

// apply writes the global settings into t, leaving its rows alone.
func (d themeDraft) apply(t *theme.Theme) error {
	scheme, err := d.Scheme.scheme()
	if err != nil {
		return err
	}
	alert, err := color.ParseRef(d.Alert)
	if err != nil {
		return fmt.Errorf("alert: %w", err)
	}
	t.Color = scheme
	t.Connection = d.Connection
	t.Alert = alert
	t.TransientSymbol = d.Transient
	return nil
}

func isShell(spec segment.Spec) bool {
	return len(spec.Command) == 3 && spec.Command[0] == "sh" && spec.Command[1] == "-c"
}

func segmentLine(spec segment.Spec) string {
	if isShell(spec) {
		return strings.ReplaceAll(spec.Command[2], "\n", " ")
	}
	return spec.String()
}

// formatSegments shows one segment per line. Shell segments show their
// script.
func formatSegments(specs []segment.Spec) string {
	lines := make([]string, 0, len(specs))
	for _, spec := range specs {
		lines = append(lines, segmentLine(spec))
	}
	return strings.Join(lines, "\n")
}

// parseSegments turns each non-blank line into a shell segment. Lines that
// still read exactly as one of prev keep that segment unchanged.
func parseSegments(text string, prev []segment.Spec) []segment.Spec {
	known := make(map[string]segment.Spec, len(prev))
	for _, spec := range prev {
		known[segmentLine(spec)] = spec
	}
	specs := []segment.Spec{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if spec, ok := known[line]; ok {
			specs = append(specs, spec)
			continue
		}
		specs = append(specs, segment.Shell(line))
	}
	return specs
}

func formatStops(stops []color.Stop) string {
	parts := make([]string, 0, len(stops))
	for _, stop := range stops {
		parts = append(parts, stop.String())
	}
	return strings.Join(parts, " ")
}

// parseStops reads whitespace or comma separated "#RRGGBB:pos" stops.
// Empty input means the default gradient.
func parseStops(text string) ([]color.Stop, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	var stops []color.Stop
	for _, field := range fields {
		stop, err := color.ParseStop(field)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	if err := color.ValidateStops(stops); err != nil {
		return nil, err
	}
	return stops, nil
}

func parseHue(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	hue, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("start hue: %w", err)
	}
	if hue < 0 || hue >= 360 {
		return 0, errors.New("start hue must be in [0, 360)")
	}
	return hue, nil
}

func parsePadding(text string) (int, error) {
	padding, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.New("padding must be a number")
	}
	if padding < 0 || padding > 8 {
		return 0, errors.New("padding must be between 0 and 8")
	}
	return padding, nil
}

func validateColor(text string) error {
	_, err := color.ParseRef(text)
	return err
}

func validateStops(text string) error {
	_, err := parseStops(text)
	return err
}

func validateHue(text string) error {
	_, err := parseHue(text)
	return err
}

func validatePadding(text string) error {
	_, err := parsePadding(text)
	return err
}
