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

	"github.com/shayne/yargs"

	"github.com/shayne/infinite/internal/config"
)

type configFlags struct {
	Force bool `flag:"force" short:"f" help:"overwrite an existing config file (init only)"`
}

type configArgs struct {
	Action string `pos:"0?" help:"show|path|init"`
}

func handleConfigCommand(_ context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, configFlags, configArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	switch strings.TrimSpace(result.Args.Action) {
	case "", "show":
		return showConfig(os.Stdout)
	case "path":
		path, err := config.SettingsPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, path)
		return nil
	case "init":
		path, err := config.SettingsPath()
		if err != nil {
			return err
		}
		return initConfig(os.Stdout, path, result.SubCommandFlags.Force)
	default:
		return newUsageError("Usage: infinite config show | path | init [--force]")
	}
}

// showConfig prints the effective settings: defaults, file and environment.
func showConfig(out io.Writer) error {
	settings, _, err := config.LoadSettings()
	if err != nil {
		return err
	}
	data, err := config.EncodeSettings(settings)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func initConfig(out io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.SaveSettings(path, config.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
