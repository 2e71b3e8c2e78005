// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("INFINITE_DAEMON", "")
	t.Setenv("INFINITE_SOCKET", "")
	t.Setenv("INFINITE_LOG_LEVEL", "")

	settings, path, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if filepath.Base(path) != "config.toml" {
		t.Fatalf("unexpected settings path %s", path)
	}
	if settings != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
	if settings.Daemon.Timeout() != 250*time.Millisecond {
		t.Fatalf("unexpected timeout %v", settings.Daemon.Timeout())
	}
}

func TestSaveAndLoadSettingsWithEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("INFINITE_DAEMON", "")
	t.Setenv("INFINITE_SOCKET", "")
	t.Setenv("INFINITE_LOG_LEVEL", "")

	path, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath: %v", err)
	}
	saved := Settings{
		Daemon: DaemonSettings{Enabled: true, Socket: "/tmp/custom.sock", TimeoutMS: 500, Workers: 4},
		Log:    LogSettings{Level: "debug"},
	}
	if err := SaveSettings(path, saved); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	settings, _, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings != saved {
		t.Fatalf("settings mismatch: %+v != %+v", settings, saved)
	}

	t.Setenv("INFINITE_DAEMON", "0")
	t.Setenv("INFINITE_SOCKET", "/run/other.sock")
	t.Setenv("INFINITE_LOG_LEVEL", "WARN")
	settings, _, err = LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings with env: %v", err)
	}
	if settings.Daemon.Enabled {
		t.Fatalf("expected INFINITE_DAEMON=0 to disable the daemon")
	}
	if settings.Daemon.Socket != "/run/other.sock" {
		t.Fatalf("unexpected socket %s", settings.Daemon.Socket)
	}
	if settings.Log.Level != "warn" {
		t.Fatalf("unexpected level %s", settings.Log.Level)
	}
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("INFINITE_DAEMON", "")
	t.Setenv("INFINITE_SOCKET", "")

	t.Setenv("INFINITE_LOG_LEVEL", "chatty")
	settings, _, err := LoadSettings()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "log.level" {
		t.Fatalf("unexpected field %q", ve.Field)
	}
	if settings != DefaultSettings() {
		t.Fatalf("expected defaults on error")
	}

	t.Setenv("INFINITE_LOG_LEVEL", "")
	t.Setenv("INFINITE_DAEMON", "maybe")
	if _, _, err := LoadSettings(); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for INFINITE_DAEMON, got %v", err)
	}
}

func TestLoadSettingsParseError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[daemon\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err = LoadSettings()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestSaveSettingsValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := DefaultSettings()
	bad.Daemon.TimeoutMS = -1
	if err := SaveSettings(path, bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected nothing written, got %v", err)
	}
}
