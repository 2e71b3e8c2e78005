// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/shayne/infinite/internal/color"
	"github.com/shayne/infinite/internal/segment"
	"github.com/shayne/infinite/internal/theme"
)

func TestSaveAndLoadTheme(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	th := theme.Default()
	th.Alert = color.FromRGB(200, 10, 10)
	th.Rows[0].Color.Accent = color.Gradient(
		color.Stop{Color: color.RGB{R: 255}, Pos: 0},
		color.Stop{Color: color.RGB{B: 255}, Pos: 1},
	)
	th.Rows[0].Connection = theme.ConnectionDouble
	th.Rows[0].RightSeparators = theme.UniformSeparators(theme.SeparatorRound)
	th.Rows[0].RightSeparators.Bold = true
	second := theme.DefaultRow()
	second.Left = []segment.Spec{segment.Shell("date +%H:%M")}
	second.Right = []segment.Spec{{Command: []string{"uptime", "-p"}}}
	second.Color.Accent = color.Rainbow(90)
	second.AccentTarget = theme.AccentForeground
	th.Rows = append(th.Rows, second)

	path, err := ThemePath()
	if err != nil {
		t.Fatalf("ThemePath: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(tmp, "infinite") {
		t.Fatalf("unexpected theme dir %s", filepath.Dir(path))
	}
	if err := SaveTheme(path, th); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}

	loaded, loadedPath, err := LoadTheme()
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if loadedPath != path {
		t.Fatalf("expected path %s, got %s", path, loadedPath)
	}
	if !reflect.DeepEqual(loaded, th) {
		t.Fatalf("theme mismatch:\n got %+v\nwant %+v", loaded, th)
	}
}

func TestLoadThemeMissingFileUsesDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loaded, _, err := LoadTheme()
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if !reflect.DeepEqual(loaded, theme.Default()) {
		t.Fatalf("expected default theme")
	}
}

func TestLoadThemeCorruptFileFallsBack(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := ThemePath()
	if err != nil {
		t.Fatalf("ThemePath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[[rows]\nleft = "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, _, err := LoadTheme()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != path {
		t.Fatalf("expected path %s in error, got %s", path, pe.Path)
	}
	if !reflect.DeepEqual(loaded, theme.Default()) {
		t.Fatalf("expected default theme on parse failure")
	}
}

func TestDecodeThemeInvalidValues(t *testing.T) {
	cases := map[string]string{
		"unknown connection": "connection = \"zigzagzag\"\n",
		"unknown color":      "alert = \"ultraviolet\"\n",
		"empty command":      "[[rows]]\n[[rows.left]]\ncommand = []\n",
		"backwards stops":    "[color.accent]\nkind = \"gradient\"\nstops = [\"#FF0000:0.8\", \"#0000FF:0.2\"]\n",
	}
	for name, doc := range cases {
		if _, err := DecodeTheme([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestDecodeThemeWithoutRows(t *testing.T) {
	th, err := DecodeTheme([]byte("transient_symbol = \"$ \"\n"))
	if err != nil {
		t.Fatalf("DecodeTheme: %v", err)
	}
	if len(th.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(th.Rows))
	}
	if th.Transient() != "$ " {
		t.Fatalf("unexpected transient symbol %q", th.Transient())
	}
	if th.Alert != color.Red {
		t.Fatalf("expected default alert color, got %s", th.Alert)
	}
}

func TestEncodeThemeIsReadable(t *testing.T) {
	data, err := EncodeTheme(theme.Default())
	if err != nil {
		t.Fatalf("EncodeTheme: %v", err)
	}
	text := string(data)
	for _, want := range []string{"connection = 'line'", "alert = 'red'", "[[rows]]", "accent_target = 'background'"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in:\n%s", want, text)
		}
	}
}

func TestRemoveTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := ThemePath()
	if err != nil {
		t.Fatalf("ThemePath: %v", err)
	}
	if err := SaveTheme(path, theme.Default()); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	removed, err := RemoveTheme()
	if err != nil {
		t.Fatalf("RemoveTheme: %v", err)
	}
	if removed != path {
		t.Fatalf("expected %s, got %s", path, removed)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected theme removed, got %v", err)
	}
	if _, err := RemoveTheme(); err != nil {
		t.Fatalf("RemoveTheme twice: %v", err)
	}
}
