// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("daemon already running")
	ErrNotRunning     = errors.New("daemon not running")
)

// Paths locates the runtime files of one daemon instance.
type Paths struct {
	Dir    string
	Socket string
	PID    string
	Log    string
}

// DefaultPaths uses $XDG_RUNTIME_DIR/infinite, or a per-user directory
// under the system temp dir.
func DefaultPaths() Paths {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return PathsIn(filepath.Join(runtimeDir, "infinite"))
	}
	return PathsIn(filepath.Join(os.TempDir(), fmt.Sprintf("infinite-%d", os.Getuid())))
}

func PathsIn(dir string) Paths {
	return Paths{
		Dir:    dir,
		Socket: filepath.Join(dir, "daemon.sock"),
		PID:    filepath.Join(dir, "daemon.pid"),
		Log:    filepath.Join(dir, "daemon.log"),
	}
}

// WithSocket overrides the socket path and keeps the other files beside it.
func (p Paths) WithSocket(socket string) Paths {
	if socket == "" {
		return p
	}
	out := PathsIn(filepath.Dir(socket))
	out.Socket = socket
	return out
}

func (p Paths) client() Client {
	return Client{Socket: p.Socket, Timeout: time.Second}
}

func WritePID(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o600)
}

func ReadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid file %s", path)
	}
	return pid, nil
}

type Status struct {
	Running bool
	PID     int
	Socket  string
}

func GetStatus(ctx context.Context, paths Paths) Status {
	status := Status{Socket: paths.Socket}
	if pid, err := ReadPID(paths.PID); err == nil {
		status.PID = pid
	}
	status.Running = paths.client().Ping(ctx)
	return status
}

// Start launches exe with args as a detached process logging to paths.Log
// and waits until it answers on the socket.
func Start(ctx context.Context, exe string, args []string, paths Paths, timeout time.Duration) (int, error) {
	if paths.client().Ping(ctx) {
		return 0, ErrAlreadyRunning
	}
	if err := os.MkdirAll(paths.Dir, 0o700); err != nil {
		return 0, fmt.Errorf("failed to create runtime dir: %w", err)
	}
	logFile, err := os.OpenFile(paths.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return 0, fmt.Errorf("failed to open daemon log: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(exe, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start daemon: %w", err)
	}
	pid := cmd.Process.Pid
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	deadline := time.Now().Add(timeout)
	for {
		if paths.client().Ping(ctx) {
			return pid, nil
		}
		select {
		case err := <-exited:
			if err == nil {
				err = errors.New("exited")
			}
			return 0, fmt.Errorf("daemon exited during startup (see %s): %w", paths.Log, err)
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
		if time.Now().After(deadline) {
			return pid, fmt.Errorf("daemon did not answer on %s within %s", paths.Socket, timeout)
		}
	}
}

// Stop asks the daemon recorded in the pid file to exit and waits for it.
func Stop(ctx context.Context, paths Paths, timeout time.Duration) error {
	pid, err := ReadPID(paths.PID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotRunning
		}
		return err
	}
	if !alive(pid) {
		cleanup(paths)
		return ErrNotRunning
	}
	if err := terminate(pid); err != nil {
		return fmt.Errorf("failed to signal daemon %d: %w", pid, err)
	}
	deadline := time.Now().Add(timeout)
	for alive(pid) {
		if time.Now().After(deadline) {
			return fmt.Errorf("daemon %d did not exit within %s", pid, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(25 * time.Millisecond):
		}
	}
	cleanup(paths)
	return nil
}

func cleanup(paths Paths) {
	_ = os.Remove(paths.PID)
	_ = os.Remove(paths.Socket)
}
