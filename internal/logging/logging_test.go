// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/appman/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]log.Level{
		"debug":  log.DebugLevel,
		" WARN ": log.WarnLevel,
		"error":  log.ErrorLevel,
		"":       log.InfoLevel,
		"chatty": log.InfoLevel,
		"info":   log.InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(input), "level %q", input)
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.New(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "count", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "count=2")
}

func TestOpen_CreatesDirectoryAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "appman.log")

	logger, closer, err := logging.Open(path, "info")
	require.NoError(t, err)

	logger.Info("first")
	require.NoError(t, closer.Close())

	logger, closer, err = logging.Open(path, "info")
	require.NoError(t, err)

	logger.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")

	log.SetDefault(logging.Discard())
}
