// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI.
type Styles struct {
	// Color palette
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color

	// Screen is applied to every rendered line.
	Screen lipgloss.Style
	Header lipgloss.Style

	// Grid cells
	Cell       lipgloss.Style
	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	Upgradable lipgloss.Style

	// Footer
	Separator lipgloss.Style
	Status    lipgloss.Style
	Detail    lipgloss.Style
	Menu      lipgloss.Style
	Prompt    lipgloss.Style

	// Text styles
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
	WarningText lipgloss.Style
	MutedText   lipgloss.Style
}

// New creates the blue-screen palette of the package browser.
func New() *Styles {
	background := lipgloss.Color("#1e3a8a") // Blue screen
	foreground := lipgloss.Color("#f8fafc")
	primary := lipgloss.Color("#facc15")    // Yellow cursor
	success := lipgloss.Color("#4ade80")    // Green
	warning := lipgloss.Color("#fb923c")    // Orange upgradable marker
	errorColor := lipgloss.Color("#f87171") // Red
	muted := lipgloss.Color("#93c5fd")      // Light blue

	base := lipgloss.NewStyle().Background(background).Foreground(foreground)

	return &Styles{
		Background: background,
		Foreground: foreground,
		Primary:    primary,
		Success:    success,
		Warning:    warning,
		Error:      errorColor,
		Muted:      muted,

		Screen: base,
		Header: base.Bold(true),

		Cell:       base,
		Cursor:     base.Background(primary).Foreground(background).Bold(true),
		Selected:   base.Foreground(success).Bold(true),
		Upgradable: base.Foreground(warning),

		Separator: base.Foreground(muted),
		Status:    base.Foreground(warning),
		Detail:    base,
		Menu:      base.Foreground(muted),
		Prompt:    base.Bold(true),

		SuccessText: base.Foreground(success),
		ErrorText:   base.Foreground(errorColor).Bold(true),
		WarningText: base.Foreground(warning),
		MutedText:   base.Foreground(muted),
	}
}

// Plain returns styles without colors, for tests and dumb terminals.
func Plain() *Styles {
	plain := lipgloss.NewStyle()

	return &Styles{
		Screen:      plain,
		Header:      plain,
		Cell:        plain,
		Cursor:      plain,
		Selected:    plain,
		Upgradable:  plain,
		Separator:   plain,
		Status:      plain,
		Detail:      plain,
		Menu:        plain,
		Prompt:      plain,
		SuccessText: plain,
		ErrorText:   plain,
		WarningText: plain,
		MutedText:   plain,
	}
}
