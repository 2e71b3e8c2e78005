// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shayne/yargs"

	"github.com/shayne/infinite/internal/config"
	"github.com/shayne/infinite/internal/daemon"
	"github.com/shayne/infinite/internal/logger"
	"github.com/shayne/infinite/internal/prompt"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/seq"
)

type promptFlags struct {
	ExitCode string `flag:"exit-code" help:"exit status of the previous command (transient prompt)"`
	Columns  int    `flag:"columns" help:"terminal width; detected when omitted"`
	NoDaemon bool   `flag:"no-daemon" help:"evaluate segments in this process"`
	ANSI     bool   `flag:"ansi" help:"emit ANSI escapes instead of zsh prompt escapes"`
}

type promptArgs struct {
	Kind string `pos:"0" help:"left|right|transient"`
}

func handlePromptCommand(ctx context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, promptFlags, promptArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	flags := result.SubCommandFlags
	sel, err := parseSelector(result.Args.Kind, flags.ExitCode)
	if err != nil {
		return err
	}
	if flags.Columns < 0 {
		return newUsageError("--columns must not be negative")
	}

	settings, log := loadSettings("warn")
	th, path, err := config.LoadTheme()
	if err != nil {
		log.WithErr(err).With("path", path).Warn("using default theme")
	}

	dialect := seq.Zsh
	if flags.ANSI {
		dialect = seq.ANSI
	}
	r := prompt.Renderer{
		Theme:   th,
		Source:  newSource(settings, flags.NoDaemon, log),
		Width:   flags.Columns,
		Dialect: dialect,
		Logger:  log,
	}
	fmt.Fprint(os.Stdout, r.Render(ctx, sel))
	return nil
}

// parseSelector maps the positional kind to a selector. An exit code that
// is not a number is kept as unknown.
func parseSelector(kind, exitCode string) (prompt.Selector, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "left":
		return prompt.Left(), nil
	case "right":
		return prompt.Right(), nil
	case "transient":
		var code *int
		if n, err := strconv.Atoi(strings.TrimSpace(exitCode)); err == nil {
			code = &n
		}
		return prompt.Transient(code), nil
	default:
		return prompt.Selector{}, newUsageError("Usage: infinite prompt left|right|transient [--exit-code N]")
	}
}

func newSource(settings config.Settings, noDaemon bool, log *logger.Logger) prompt.Source {
	dir, _ := os.Getwd()
	local := prompt.LocalSource{Options: segment.Options{Dir: dir, Limit: settings.Daemon.Workers}}
	if noDaemon || !settings.Daemon.Enabled {
		return local
	}
	paths := daemon.DefaultPaths().WithSocket(settings.Daemon.Socket)
	return prompt.DaemonSource{
		Client: daemon.Client{
			Socket:      paths.Socket,
			DialTimeout: settings.Daemon.Timeout(),
			Logger:      log,
		},
		Dir:      dir,
		Env:      os.Environ(),
		Fallback: local,
		Logger:   log,
	}
}
