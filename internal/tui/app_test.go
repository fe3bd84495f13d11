// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janderssonse/appman/internal/tui/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresTerminal(t *testing.T) {
	t.Parallel()

	session := models.NewSession(context.Background(), models.Options{})
	app := NewApp(session, WithIO(strings.NewReader(""), &bytes.Buffer{}))

	err := app.Run(context.Background())
	require.ErrorIs(t, err, ErrNoTerminal)
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	file, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = file.Close() })

	assert.False(t, isTerminal(file), "regular file")
	assert.False(t, isTerminal(&bytes.Buffer{}), "no descriptor")
}
