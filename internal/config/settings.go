// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type Settings struct {
	Daemon DaemonSettings `toml:"daemon"`
	Log    LogSettings    `toml:"log"`
}

type DaemonSettings struct {
	Enabled   bool   `toml:"enabled"`
	Socket    string `toml:"socket,omitempty"`
	TimeoutMS int    `toml:"timeout_ms" validate:"gte=0,lte=60000"`
	Workers   int    `toml:"workers,omitempty" validate:"gte=0,lte=256"`
}

type LogSettings struct {
	// Level is empty to use each command's own default.
	Level string `toml:"level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
}

func DefaultSettings() Settings {
	return Settings{
		Daemon: DaemonSettings{Enabled: true, TimeoutMS: 250},
	}
}

func (d DaemonSettings) Timeout() time.Duration {
	return time.Duration(d.TimeoutMS) * time.Millisecond
}

func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadSettings applies defaults, the config file and the INFINITE_*
// environment, in that order. On error the defaults are returned.
func LoadSettings() (Settings, string, error) {
	path, err := SettingsPath()
	if err != nil {
		return DefaultSettings(), "", err
	}
	settings, err := loadSettingsFile(path)
	if err != nil {
		return DefaultSettings(), path, err
	}
	if err := applyEnv(&settings, os.Getenv); err != nil {
		return DefaultSettings(), path, err
	}
	if err := ValidateSettings(settings); err != nil {
		return DefaultSettings(), path, err
	}
	return settings, path, nil
}

func loadSettingsFile(path string) (Settings, error) {
	settings := DefaultSettings()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), &ParseError{Path: path, Err: err}
	}
	return settings, nil
}

func EncodeSettings(settings Settings) ([]byte, error) {
	return toml.Marshal(settings)
}

func SaveSettings(path string, settings Settings) error {
	if err := ValidateSettings(settings); err != nil {
		return err
	}
	data, err := EncodeSettings(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyEnv(settings *Settings, getenv func(string) string) error {
	if value := strings.TrimSpace(getenv("INFINITE_DAEMON")); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Field: "INFINITE_DAEMON", Message: fmt.Sprintf("invalid boolean %q", value), Err: err}
		}
		settings.Daemon.Enabled = enabled
	}
	if value := strings.TrimSpace(getenv("INFINITE_SOCKET")); value != "" {
		settings.Daemon.Socket = value
	}
	if value := strings.TrimSpace(getenv("INFINITE_LOG_LEVEL")); value != "" {
		settings.Log.Level = strings.ToLower(value)
	}
	return nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

func ValidateSettings(settings Settings) error {
	err := validatorInstance().Struct(settings)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := strings.ToLower(strings.TrimPrefix(fe.StructNamespace(), "Settings."))
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), Err: err}
	}
	return &ValidationError{Message: err.Error(), Err: err}
}
