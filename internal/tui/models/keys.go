// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/janderssonse/appman/internal/config"
)

// Key names produced by bubbletea that are bound regardless of config.
const (
	KeyCtrlC = "ctrl+c"
	KeyEnter = "enter"
	KeyEsc   = "esc"
)

// KeyMap defines the key bindings of the package browser.
type KeyMap struct {
	Quit               key.Binding
	Down               key.Binding
	Up                 key.Binding
	Left               key.Binding
	Right              key.Binding
	NextPage           key.Binding
	PrevPage           key.Binding
	Select             key.Binding
	Search             key.Binding
	Remove             key.Binding
	Update             key.Binding
	OnlyUpdatable      key.Binding
	SelectAllUpdatable key.Binding
	Help               key.Binding
}

// NewKeyMap builds bindings from configured characters. Arrow keys are
// bound next to the movement characters and ctrl+c always quits.
func NewKeyMap(keys config.Keys) KeyMap {
	return KeyMap{
		Quit:               binding("quit", keys.Quit, KeyCtrlC),
		Down:               binding("down", keys.Down, "down"),
		Up:                 binding("up", keys.Up, "up"),
		Left:               binding("left", keys.Left, "left"),
		Right:              binding("right", keys.Right, "right"),
		NextPage:           binding("next page", keys.NextPage),
		PrevPage:           binding("previous page", keys.PrevPage),
		Select:             binding("select/deselect", keys.Select),
		Search:             binding("search (regex)", keys.Search),
		Remove:             binding("remove selected", keys.Remove),
		Update:             binding("update selected", keys.Update),
		OnlyUpdatable:      binding("only updatable", keys.OnlyUpdatable),
		SelectAllUpdatable: binding("select all updatable", keys.SelectAllUpdatable),
		Help:               binding("help", keys.Help),
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys)
}

// All returns every binding in menu order.
func (k KeyMap) All() []key.Binding {
	return []key.Binding{
		k.Quit, k.Down, k.Up, k.Left, k.Right, k.NextPage, k.PrevPage,
		k.Select, k.Search, k.Remove, k.Update, k.OnlyUpdatable,
		k.SelectAllUpdatable, k.Help,
	}
}

func binding(desc, char string, extra ...string) key.Binding {
	if char == "" && len(extra) == 0 {
		return key.NewBinding(key.WithHelp(DisplayKey(char), desc), key.WithDisabled())
	}

	return key.NewBinding(
		key.WithKeys(append([]string{char}, extra...)...),
		key.WithHelp(DisplayKey(char), desc),
	)
}

// DisplayKey returns the printable name of a bound character.
func DisplayKey(char string) string {
	switch char {
	case " ":
		return "space"
	case "":
		return "unbound"
	}

	return char
}
