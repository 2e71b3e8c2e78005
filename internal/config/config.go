// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/shayne/infinite/internal/theme"
)

const appName = "infinite"

// ParseError reports a config file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type ValidationError = theme.ValidationError

func Dir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		var err error
		configHome, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(configHome, appName), nil
}

func ThemePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme.toml"), nil
}

// LoadTheme reads the user's theme. A missing file yields the default theme
// and no error; any other failure yields the default theme and the error.
func LoadTheme() (theme.Theme, string, error) {
	path, err := ThemePath()
	if err != nil {
		return theme.Default(), "", err
	}
	th, err := LoadThemeFile(path)
	if err == nil {
		return th, path, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return theme.Default(), path, nil
	}
	return theme.Default(), path, err
}

func LoadThemeFile(path string) (theme.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return theme.Default(), err
	}
	th, err := DecodeTheme(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return theme.Default(), err
	}
	return th, nil
}

// DecodeTheme decodes onto the default scheme and symbols. Rows always come
// from the document, so a theme without rows renders the fallback line.
func DecodeTheme(data []byte) (theme.Theme, error) {
	th := theme.Default()
	th.Rows = nil
	if err := toml.Unmarshal(data, &th); err != nil {
		return theme.Default(), &ParseError{Err: err}
	}
	if err := th.Validate(); err != nil {
		return theme.Default(), err
	}
	return th, nil
}

func EncodeTheme(th theme.Theme) ([]byte, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return toml.Marshal(th)
}

func SaveTheme(path string, th theme.Theme) error {
	data, err := EncodeTheme(th)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RemoveTheme deletes the theme file so the default applies again.
func RemoveTheme() (string, error) {
	path, err := ThemePath()
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return path, err
	}
	return path, nil
}
