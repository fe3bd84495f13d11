// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appman/internal/config"
	"github.com/janderssonse/appman/internal/tui/styles"
	"github.com/stretchr/testify/assert"
)

func TestNewKeyMap(t *testing.T) {
	t.Parallel()

	keys := config.Default().Keys
	keys.Down = "s"
	keys.Quit = "x"

	km := NewKeyMap(keys)

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, km.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down), "arrow stays bound")
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, km.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Select))
	assert.Equal(t, "x", km.Quit.Help().Key)
	assert.Len(t, km.All(), 14)
}

func TestDisplayKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "space", DisplayKey(" "))
	assert.Equal(t, "A", DisplayKey("A"))
	assert.Equal(t, "unbound", DisplayKey(""))
}

func TestNewKeyMapUnboundHelp(t *testing.T) {
	t.Parallel()

	keys := config.Default().Keys
	keys.Search = "?"
	keys.Help = ""

	km := NewKeyMap(keys)
	question := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}

	assert.False(t, km.Help.Enabled())
	assert.False(t, key.Matches(question, km.Help))
	assert.True(t, key.Matches(question, km.Search))
	assert.NotContains(t, NewHelp(km, "").Markdown(), "| help |")

	m := NewSession(context.Background(), Options{Catalog: sampleCatalog(), Keys: km, Styles: styles.Plain()})
	press(m, "?")
	assert.Equal(t, ModeSearch, m.Mode())
	assert.NotContains(t, m.View(), "Help: ")
}

func TestHelpMarkdownListsBindings(t *testing.T) {
	t.Parallel()

	help := NewHelp(DefaultKeyMap(), "")
	markdown := help.Markdown()

	assert.Contains(t, markdown, "| `space` | select/deselect |")
	assert.Contains(t, markdown, "| `A` | select all updatable |")
	assert.Equal(t, DefaultHelpStyle, help.style)
}
