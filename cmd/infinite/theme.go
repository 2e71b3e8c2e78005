// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shayne/yargs"
	"golang.org/x/term"

	"github.com/shayne/infinite/internal/config"
	"github.com/shayne/infinite/internal/layout"
	"github.com/shayne/infinite/internal/tui"
)

type themeFlags struct {
	TOML bool `flag:"toml" help:"print the theme file instead of a preview"`
	Yes  bool `flag:"yes" short:"y" help:"skip confirmation (reset only)"`
}

type themeArgs struct {
	Action string `pos:"0?" help:"show|edit|reset|path"`
}

func handleThemeCommand(ctx context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, themeFlags, themeArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	switch strings.TrimSpace(result.Args.Action) {
	case "", "show":
		return showTheme(os.Stdout, flags.TOML)
	case "edit":
		return editTheme(ctx)
	case "reset":
		return resetTheme(ctx, flags.Yes)
	case "path":
		path, err := config.ThemePath()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, path)
		return nil
	default:
		return newUsageError("Usage: infinite theme show [--toml] | edit | reset | path")
	}
}

func showTheme(out io.Writer, asTOML bool) error {
	th, path, loadErr := config.LoadTheme()
	if asTOML {
		if loadErr != nil {
			return loadErr
		}
		data, err := config.EncodeTheme(th)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	styles := tui.StylesFor(out)
	source := path
	if _, err := os.Stat(path); err != nil {
		source = "built-in default"
	}
	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("theme:"), styles.Value.Render(source))
	if loadErr != nil {
		fmt.Fprintf(out, "%s %s\n", styles.Error.Render("error:"), loadErr)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.Preview(th, layout.TerminalWidth()))
	return nil
}

func editTheme(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("theme edit requires a TTY")
	}
	th, path, err := config.LoadTheme()
	if path == "" {
		return err
	}
	if err != nil {
		// Editing starts from the default; the broken file is replaced on save.
		fmt.Fprintf(os.Stderr, "infinite: %v; starting from the default theme\n", err)
	}
	edited, err := tui.Edit(ctx, th)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, tui.ErrDiscarded) {
		fmt.Fprintln(os.Stdout, "Theme unchanged.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := config.SaveTheme(path, edited); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Saved %s\n", path)
	return nil
}

func resetTheme(ctx context.Context, yes bool) error {
	if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
		confirmed := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Reset the theme to the default?").Value(&confirmed),
		)).WithTheme(tui.HuhTheme()).RunWithContext(ctx)
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			return nil
		}
	}
	path, err := config.RemoveTheme()
	if err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Removed %s; using the default theme.\n", path)
	return nil
}
