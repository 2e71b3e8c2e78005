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
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shayne/yargs"

	"github.com/shayne/infinite/internal/config"
	"github.com/shayne/infinite/internal/daemon"
	"github.com/shayne/infinite/internal/logger"
	"github.com/shayne/infinite/internal/tui"
)

const (
	daemonStartTimeout = 3 * time.Second
	daemonStopTimeout  = 3 * time.Second
)

type daemonFlags struct {
	Socket string `flag:"socket" help:"socket path (default $XDG_RUNTIME_DIR/infinite/daemon.sock)"`
}

type daemonArgs struct {
	Action string `pos:"0?" help:"start|stop|restart|status|serve"`
}

func handleDaemonCommand(ctx context.Context, args []string) error {
	result, err := yargs.ParseAndHandleHelp[struct{}, daemonFlags, daemonArgs](args, helpConfig)
	if errors.Is(err, yargs.ErrShown) {
		return nil
	}
	if err != nil {
		return err
	}
	settings, log := loadSettings("info")
	socket := strings.TrimSpace(result.SubCommandFlags.Socket)
	if socket == "" {
		socket = settings.Daemon.Socket
	}
	paths := daemon.DefaultPaths().WithSocket(socket)

	switch strings.TrimSpace(result.Args.Action) {
	case "start":
		return startDaemon(ctx, os.Stdout, paths)
	case "stop":
		return stopDaemon(ctx, os.Stdout, paths)
	case "restart":
		if err := stopDaemon(ctx, io.Discard, paths); err != nil {
			return err
		}
		return startDaemon(ctx, os.Stdout, paths)
	case "", "status":
		return printDaemonStatus(os.Stdout, daemon.GetStatus(ctx, paths))
	case "serve":
		return runServe(ctx, settings, paths, log)
	default:
		return newUsageError("Usage: infinite daemon start|stop|restart|status|serve [--socket PATH]")
	}
}

func startDaemon(ctx context.Context, out io.Writer, paths daemon.Paths) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	pid, err := daemon.Start(ctx, exe, []string{"daemon", "serve", "--socket", paths.Socket}, paths, daemonStartTimeout)
	if errors.Is(err, daemon.ErrAlreadyRunning) {
		fmt.Fprintln(out, "daemon already running")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "daemon started (pid %d)\n", pid)
	return nil
}

func stopDaemon(ctx context.Context, out io.Writer, paths daemon.Paths) error {
	err := daemon.Stop(ctx, paths, daemonStopTimeout)
	if errors.Is(err, daemon.ErrNotRunning) {
		fmt.Fprintln(out, "daemon not running")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "daemon stopped")
	return nil
}

func printDaemonStatus(out io.Writer, status daemon.Status) error {
	styles := tui.StylesFor(out)
	state := styles.Stopped.Render("stopped")
	if status.Running {
		state = styles.Running.Render("running")
	}
	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("status:"), state)
	fmt.Fprintf(out, "%s %s\n", styles.Label.Render("socket:"), styles.Value.Render(status.Socket))
	if status.Running && status.PID > 0 {
		fmt.Fprintf(out, "%s %d\n", styles.Label.Render("pid:"), status.PID)
	}
	return nil
}

// runServe logs a serve failure itself, so the CLI does not print it a
// second time.
func runServe(ctx context.Context, settings config.Settings, paths daemon.Paths, log *logger.Logger) error {
	if err := serveDaemon(ctx, settings, paths, log); err != nil {
		log.Error(err, "daemon failed")
		return newSilentError(err)
	}
	return nil
}

// serveDaemon runs the server in the foreground until SIGINT or SIGTERM.
func serveDaemon(ctx context.Context, settings config.Settings, paths daemon.Paths, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	th, themePath, err := config.LoadTheme()
	if err != nil {
		log.WithErr(err).With("path", themePath).Warn("using default theme")
	}
	srv, err := daemon.NewServer(daemon.Options{
		Socket: paths.Socket,
		Theme:  th,
		Logger: log,
		Limit:  settings.Daemon.Workers,
	})
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return err
	}
	defer srv.Close()
	if err := daemon.WritePID(paths.PID); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}
	defer os.Remove(paths.PID)

	log.With("pid", os.Getpid()).With("pid_file", paths.PID).Debug("pid file written")
	err = srv.Serve(ctx)
	log.Info("daemon stopped")
	return err
}
