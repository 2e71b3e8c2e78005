// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command infinite renders a themed multi-row zsh prompt.
package main

//go:generate go tool addlicense -c AUTHORS -l bsd -s=only -y 2025 .
//go:generate go tool depaware --update github.com/shayne/infinite/cmd/infinite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shayne/yargs"

	"github.com/shayne/infinite/internal/config"
	"github.com/shayne/infinite/internal/logger"
)

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		reportCLIError(err)
		os.Exit(1)
	}
}

type usageError struct {
	message string
}

func (e usageError) Error() string {
	return e.message
}

type silentError struct {
	err error
}

func (e silentError) Error() string {
	return e.err.Error()
}

func (e silentError) Unwrap() error {
	return e.err
}

func reportCLIError(err error) {
	var usageErr usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(os.Stderr, usageErr.message)
		return
	}
	var quietErr silentError
	if errors.As(err, &quietErr) {
		return
	}
	fmt.Fprintln(os.Stderr, "infinite: "+err.Error())
}

func newUsageError(message string) error {
	return usageError{message: message}
}

func newSilentError(err error) error {
	if err == nil {
		return nil
	}
	return silentError{err: err}
}

var (
	version = "dev"
	commit  = ""
)

func runCLI(args []string) error {
	args = normalizeArgs(args)
	handlers := map[string]yargs.SubcommandHandler{
		"prompt":  handlePromptCommand,
		"theme":   handleThemeCommand,
		"daemon":  handleDaemonCommand,
		"init":    handleInitCommand,
		"config":  handleConfigCommand,
		"version": handleVersionCommand,
	}
	if err := yargs.RunSubcommands(context.Background(), args, helpConfig, struct{}{}, handlers); err != nil {
		if errors.Is(err, yargs.ErrShown) {
			return nil
		}
		return err
	}
	return nil
}

var helpConfig = yargs.HelpConfig{
	Command: yargs.CommandInfo{
		Name:        "infinite",
		Description: "Themed multi-row zsh prompt",
		Examples: []string{
			`eval "$(infinite init zsh)"`,
			"infinite prompt left --columns 120",
			"infinite prompt transient --exit-code 1",
			"infinite theme edit",
			"infinite theme show --toml",
			"infinite daemon start",
			"infinite daemon status",
		},
	},
	SubCommands: map[string]yargs.SubCommandInfo{
		"prompt": {
			Name:        "prompt",
			Description: "Print the left, right or transient prompt",
			Usage:       "left|right|transient [--exit-code N] [--columns N] [--no-daemon] [--ansi]",
			Examples: []string{
				"infinite prompt left",
				"infinite prompt right",
				"infinite prompt transient --exit-code $?",
			},
		},
		"theme": {
			Name:        "theme",
			Description: "Show, edit or reset the theme",
			Usage:       "show [--toml] | edit | reset | path",
		},
		"daemon": {
			Name:        "daemon",
			Description: "Manage the segment daemon",
			Usage:       "start|stop|restart|status|serve [--socket PATH]",
		},
		"init": {
			Name:        "init",
			Description: "Print shell integration code",
			Usage:       "zsh [--no-transient]",
			Examples:    []string{`eval "$(infinite init zsh)"`},
		},
		"config": {
			Name:        "config",
			Description: "Show or create the settings file",
			Usage:       "show | path | init [--force]",
		},
		"version": {
			Name:        "version",
			Description: "Show CLI version",
		},
	},
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"--help"}
	}
	switch args[0] {
	case "--version", "-v":
		return append([]string{"version"}, args[1:]...)
	case "help":
		if len(args) > 1 && isKnownCommand(args[1]) {
			return []string{args[1], "--help"}
		}
		return []string{"--help"}
	}
	return args
}

func isKnownCommand(value string) bool {
	switch value {
	case "prompt", "theme", "daemon", "init", "config", "version":
		return true
	default:
		return false
	}
}

func handleVersionCommand(_ context.Context, args []string) error {
	_, err := yargs.ParseAndHandleHelp[struct{}, struct{}, struct{}](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, versionString())
	return nil
}

func versionString() string {
	trimmed := strings.TrimSpace(version)
	if trimmed == "" {
		trimmed = "dev"
	}
	if c := strings.TrimSpace(commit); c != "" {
		return fmt.Sprintf("%s (%s)", trimmed, c)
	}
	return trimmed
}

// newLogger builds the stderr logger, preferring the configured level over
// the command's default.
func newLogger(settings config.Settings, defaultLevel string) *logger.Logger {
	level := settings.Log.Level
	if level == "" {
		level = defaultLevel
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return logger.Nop()
	}
	return log
}

// loadSettings never fails; invalid settings are reported and replaced by
// the defaults.
func loadSettings(defaultLevel string) (config.Settings, *logger.Logger) {
	settings, path, err := config.LoadSettings()
	log := newLogger(settings, defaultLevel)
	if err != nil {
		log.WithErr(err).With("path", path).Warn("ignoring invalid settings")
	}
	return settings, log
}
