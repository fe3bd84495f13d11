// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultHelpStyle is the glamour style used when none is configured.
const DefaultHelpStyle = "dark"

// Help renders the key binding overlay as markdown.
type Help struct {
	keys    KeyMap
	style   string
	width   int
	content string
}

// NewHelp creates the help overlay for keys.
func NewHelp(keys KeyMap, style string) *Help {
	if style == "" {
		style = DefaultHelpStyle
	}

	return &Help{keys: keys, style: style, width: 80}
}

// SetWidth sets the wrap width and drops the rendered content.
func (h *Help) SetWidth(width int) {
	if width == h.width {
		return
	}

	h.width = width
	h.content = ""
}

// Markdown returns the unrendered help document.
func (h *Help) Markdown() string {
	var b strings.Builder

	b.WriteString("# appman keys\n\n")
	b.WriteString("| Key | Action |\n")
	b.WriteString("| --- | --- |\n")

	for _, binding := range h.keys.All() {
		if !binding.Enabled() {
			continue
		}

		help := binding.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", help.Key, help.Desc)
	}

	b.WriteString("\nArrow keys move the cursor as well. `ctrl+c` quits from any mode.\n")
	b.WriteString("Searches are case-insensitive regular expressions over package names.\n\n")
	b.WriteString("Press any key to return.\n")

	return b.String()
}

// View renders the overlay, once per width.
func (h *Help) View() string {
	if h.content != "" {
		return h.content
	}

	markdown := h.Markdown()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(h.style),
		glamour.WithWordWrap(h.width),
	)
	if err != nil {
		h.content = markdown
		return h.content
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		h.content = markdown
		return h.content
	}

	h.content = rendered

	return h.content
}
