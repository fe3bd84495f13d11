// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the configuration and state directories.
const AppName = "appman"

// LegacyKeyFile is the key binding file read from the working directory.
const LegacyKeyFile = "app_manager.conf"

// GetXDGConfigHome returns XDG config directory.
func GetXDGConfigHome() string {
	return GetXDGConfigHomeWithEnv(os.Getenv("XDG_CONFIG_HOME"))
}

// GetXDGConfigHomeWithEnv returns XDG config directory with custom environment override for testing.
func GetXDGConfigHomeWithEnv(xdgConfigHome string) string {
	return xdgDir(xdgConfigHome, ".config")
}

// GetXDGStateHome returns XDG state directory.
func GetXDGStateHome() string {
	return GetXDGStateHomeWithEnv(os.Getenv("XDG_STATE_HOME"))
}

// GetXDGStateHomeWithEnv returns XDG state directory with custom environment override for testing.
func GetXDGStateHomeWithEnv(xdgStateHome string) string {
	return xdgDir(xdgStateHome, ".local", "state")
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/appman/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(GetXDGConfigHome(), AppName, "config.toml")
}

// DefaultLogPath returns $XDG_STATE_HOME/appman/appman.log.
func DefaultLogPath() string {
	return filepath.Join(GetXDGStateHome(), AppName, AppName+".log")
}

// DefaultLockPath returns the process lock file path.
func DefaultLockPath() string {
	return filepath.Join(GetXDGStateHome(), AppName, AppName+".lock")
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

func xdgDir(override string, fallback ...string) string {
	if override != "" {
		return override
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{home}, fallback...)...)
	}

	return ""
}
