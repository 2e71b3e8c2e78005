// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/layout"
	"github.com/shayne/infinite/internal/theme"
)

// ErrDiscarded is returned by Edit when the user leaves without saving.
var ErrDiscarded = errors.New("changes discarded")

const (
	actionGlobal  = "global"
	actionAdd     = "add"
	actionRemove  = "remove"
	actionSave    = "save"
	actionDiscard = "discard"
	rowPrefix     = "row:"
)

// Edit runs the interactive theme editor on a copy of th and returns the
// result once the user saves a valid theme. Aborting a form (ctrl+c)
// returns huh.ErrUserAborted.
func Edit(ctx context.Context, th theme.Theme) (theme.Theme, error) {
	draft := cloneTheme(th)
	for {
		action, err := runMenu(ctx, draft)
		if err != nil {
			return th, err
		}
		switch {
		case action == actionGlobal:
			if err := editGlobal(ctx, &draft); err != nil {
				return th, err
			}
		case action == actionAdd:
			draft.Rows = append(draft.Rows, theme.DefaultRow())
			if err := editRow(ctx, &draft, len(draft.Rows)-1); err != nil {
				return th, err
			}
		case action == actionRemove:
			if err := removeRow(ctx, &draft); err != nil {
				return th, err
			}
		case action == actionSave:
			if err := draft.Validate(); err != nil {
				if err := showNote(ctx, "Theme is not valid", err.Error()); err != nil {
					return th, err
				}
				continue
			}
			return draft, nil
		case action == actionDiscard:
			return th, ErrDiscarded
		case strings.HasPrefix(action, rowPrefix):
			index, err := strconv.Atoi(strings.TrimPrefix(action, rowPrefix))
			if err != nil || index < 0 || index >= len(draft.Rows) {
				continue
			}
			if err := editRow(ctx, &draft, index); err != nil {
				return th, err
			}
		}
	}
}

func runForm(ctx context.Context, groups ...*huh.Group) error {
	return huh.NewForm(groups...).WithTheme(HuhTheme()).RunWithContext(ctx)
}

func menuOptions(t theme.Theme) []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("Global colors and symbols", actionGlobal)}
	for i, row := range t.Rows {
		options = append(options, huh.NewOption(fmt.Sprintf("Row %d: %s", i+1, rowSummary(row)), rowPrefix+strconv.Itoa(i)))
	}
	options = append(options, huh.NewOption("Add row", actionAdd))
	if len(t.Rows) > 0 {
		options = append(options, huh.NewOption("Remove row", actionRemove))
	}
	return append(options,
		huh.NewOption("Save", actionSave),
		huh.NewOption("Discard changes", actionDiscard),
	)
}

func rowSummary(row theme.Row) string {
	side := func(n int) string {
		if n == 1 {
			return "1 segment"
		}
		return fmt.Sprintf("%d segments", n)
	}
	return fmt.Sprintf("%s left, %s right, %s", side(len(row.Left)), side(len(row.Right)), row.Connection)
}

func runMenu(ctx context.Context, t theme.Theme) (string, error) {
	action := actionSave
	err := runForm(ctx, huh.NewGroup(
		huh.NewSelect[string]().
			Title("Edit theme").
			Description(Preview(t, min(layout.TerminalWidth(), 100))).
			Options(menuOptions(t)...).
			Value(&action),
	))
	return action, err
}

func showNote(ctx context.Context, title, body string) error {
	return runForm(ctx, huh.NewGroup(huh.NewNote().Title(title).Description(body)))
}

func removeRow(ctx context.Context, t *theme.Theme) error {
	index := len(t.Rows) - 1
	options := make([]huh.Option[int], 0, len(t.Rows))
	for i, row := range t.Rows {
		options = append(options, huh.NewOption(fmt.Sprintf("Row %d: %s", i+1, rowSummary(row)), i))
	}
	confirmed := false
	err := runForm(ctx, huh.NewGroup(
		huh.NewSelect[int]().Title("Remove which row?").Options(options...).Value(&index),
		huh.NewConfirm().Title("Remove it?").Value(&confirmed),
	))
	if err != nil || !confirmed {
		return err
	}
	t.Rows = append(t.Rows[:index], t.Rows[index+1:]...)
	return nil
}

func editGlobal(ctx context.Context, t *theme.Theme) error {
	draft := newThemeDraft(*t)
	groups := schemeGroups("Global colors", &draft.Scheme)
	groups = append(groups, huh.NewGroup(
		huh.NewSelect[theme.Connection]().Title("Connection").Options(connectionOptions()...).Value(&draft.Connection),
		huh.NewInput().Title("Alert color").Description("Transient prompt color after a failed command").
			Value(&draft.Alert).Validate(validateColor),
		huh.NewInput().Title("Transient symbol").Placeholder(theme.DefaultTransientSymbol).Value(&draft.Transient),
	).Title("Symbols"))
	if err := runForm(ctx, groups...); err != nil {
		return err
	}
	return draft.apply(t)
}

func editRow(ctx context.Context, t *theme.Theme, index int) error {
	draft := newRowDraft(t.Rows[index])
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewText().Title("Left segments").Description("One shell command per line").Value(&draft.Left),
			huh.NewText().Title("Right segments").Description("One shell command per line").Value(&draft.Right),
		).Title(fmt.Sprintf("Row %d", index+1)),
	}
	groups = append(groups, schemeGroups("Row colors", &draft.Scheme)...)
	groups = append(groups,
		huh.NewGroup(
			huh.NewSelect[theme.Connection]().Title("Connection").Options(connectionOptions()...).Value(&draft.Connection),
			huh.NewSelect[theme.AccentTarget]().Title("Accent colors").Options(
				huh.NewOption("Segment backgrounds", theme.AccentBackground),
				huh.NewOption("Separators only", theme.AccentForeground),
			).Value(&draft.AccentTarget),
			huh.NewConfirm().Title("Left cap").Value(&draft.LeftCap),
			huh.NewConfirm().Title("Right cap").Value(&draft.RightCap),
			huh.NewInput().Title("Padding").Description("Spaces around each segment").
				Value(&draft.Padding).Validate(validatePadding),
		).Title("Frame"),
		separatorGroup("Left separators", &draft.LeftSeparators),
		separatorGroup("Right separators", &draft.RightSeparators),
	)
	if err := runForm(ctx, groups...); err != nil {
		return err
	}
	row, err := draft.row()
	if err != nil {
		return err
	}
	t.Rows[index] = row
	return nil
}

func schemeGroups(title string, d *schemeDraft) []*huh.Group {
	colorInput := func(label string, value *string) huh.Field {
		return huh.NewInput().Title(label).
			Placeholder("default, red, bright-blue, 208, #1e1e2e").
			Value(value).Validate(validateColor)
	}
	return []*huh.Group{
		huh.NewGroup(
			colorInput("Background", &d.Background),
			colorInput("Foreground", &d.Foreground),
			colorInput("Primary", &d.Primary),
			colorInput("Secondary", &d.Secondary),
		).Title(title),
		huh.NewGroup(
			huh.NewSelect[color.AccentKind]().Title("Accent").Options(
				huh.NewOption("Flat color", color.AccentFlat),
				huh.NewOption("Rainbow", color.AccentRainbow),
				huh.NewOption("Gradient", color.AccentGradient),
			).Value(&d.AccentKind),
			colorInput("Flat accent color", &d.AccentColor),
			huh.NewInput().Title("Rainbow start hue").Placeholder("0-359").
				Value(&d.StartHue).Validate(validateHue),
			huh.NewInput().Title("Gradient stops").
				Description("#RRGGBB:position pairs, empty for the default rainbow").
				Value(&d.Stops).Validate(validateStops),
		).Title("Accent"),
	}
}

func separatorGroup(title string, set *theme.SeparatorSet) *huh.Group {
	sel := func(label string, value *theme.Separator) huh.Field {
		return huh.NewSelect[theme.Separator]().Title(label).Options(separatorOptions()...).Value(value)
	}
	return huh.NewGroup(
		sel("Start", &set.Start),
		sel("Between segments", &set.Mid),
		sel("End", &set.End),
		huh.NewConfirm().Title("Bold").Value(&set.Bold),
	).Title(title)
}

func connectionOptions() []huh.Option[theme.Connection] {
	options := make([]huh.Option[theme.Connection], 0, len(theme.Connections()))
	for _, c := range theme.Connections() {
		options = append(options, huh.NewOption(fmt.Sprintf("%-9s %s", c, strings.Repeat(c.Glyph(), 6)), c))
	}
	return options
}

func separatorOptions() []huh.Option[theme.Separator] {
	options := make([]huh.Option[theme.Separator], 0, len(theme.Separators()))
	for _, s := range theme.Separators() {
		box, line := s.Box(), s.Line()
		options = append(options, huh.NewOption(fmt.Sprintf("%-9s %s %s %s %s", s, box.Left, line.Left, line.Right, box.Right), s))
	}
	return options
}

func cloneTheme(t theme.Theme) theme.Theme {
	out := t
	out.Color.Accent.Stops = append([]color.Stop(nil), t.Color.Accent.Stops...)
	out.Rows = make([]theme.Row, len(t.Rows))
	for i, row := range t.Rows {
		row.Left = append(row.Left[:0:0], row.Left...)
		row.Right = append(row.Right[:0:0], row.Right...)
		row.Color.Accent.Stops = append([]color.Stop(nil), row.Color.Accent.Stops...)
		out.Rows[i] = row
	}
	return out
}
