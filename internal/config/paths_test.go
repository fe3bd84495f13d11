// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathUtils_XDGHomes(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  func(string) string
		env  string
		want string
	}{
		{"config override", GetXDGConfigHomeWithEnv, "/custom/config", "/custom/config"},
		{"config fallback", GetXDGConfigHomeWithEnv, "", filepath.Join(home, ".config")},
		{"state override", GetXDGStateHomeWithEnv, "/custom/state", "/custom/state"},
		{"state fallback", GetXDGStateHomeWithEnv, "", filepath.Join(home, ".local", "state")},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.want, testCase.got(testCase.env))
		})
	}
}

func TestPathUtils_DefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	require.Equal(t, "/xdg/config/appman/config.toml", DefaultConfigPath())
	require.Equal(t, "/xdg/state/appman/appman.log", DefaultLogPath())
	require.Equal(t, "/xdg/state/appman/appman.lock", DefaultLockPath())
}

func TestPathUtils_ExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"expands tilde to home", "~/test", filepath.Join(home, "test")},
		{"handles plain tilde", "~", home},
		{"leaves absolute paths unchanged", "/absolute/path", "/absolute/path"},
		{"leaves relative paths unchanged", "relative/path", "relative/path"},
		{"leaves other users unchanged", "~bob/x", "~bob/x"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.want, ExpandPath(testCase.path))
		})
	}
}
