// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/tui/layout"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// View implements tea.Model. The frame is rebuilt only after a recognized
// action; otherwise the previous frame is returned unchanged.
func (m *Session) View() string {
	if !m.dirty && m.frame != "" {
		return m.frame
	}

	m.frame = m.render()
	m.dirty = false
	m.renders++

	return m.frame
}

// Renders returns how many frames have been built.
func (m *Session) Renders() int {
	return m.renders
}

func (m *Session) render() string {
	switch {
	case m.quitting:
		return ""
	case m.mode == ModeHelp:
		return m.help.View()
	}

	if !m.geometry.Fits() {
		return m.plainLine(m.styles.ErrorText,
			fmt.Sprintf("Terminal too small: need at least %d rows", layout.ReservedRows+1))
	}

	pageSize := m.pageSize()
	page := layout.PageFor(m.cursor, pageSize, len(m.displayed))

	lines := make([]string, 0, m.geometry.Rows)
	lines = append(lines, m.plainLine(m.styles.Header, m.header(page)))
	lines = append(lines, m.grid(page, pageSize)...)
	lines = append(lines, m.footer()...)

	return strings.Join(lines, "\n")
}

func (m *Session) header(page layout.Page) string {
	return fmt.Sprintf("appman  %d packages (%d updatable)  page %d/%d  %d selected",
		len(m.displayed), m.catalog.UpdatableLen(), page.Index+1, page.Count, m.selection.Count())
}

// grid renders one page as pageSize/Columns rows, blank rows included, so
// the footer stays at the bottom of the screen.
func (m *Session) grid(page layout.Page, pageSize int) []string {
	width := m.geometry.ColumnWidth()
	rows := pageSize / layout.Columns
	lines := make([]string, 0, rows)

	for row := range rows {
		cells := make([]string, 0, layout.Columns)

		for col := range layout.Columns {
			index := page.Start + row*layout.Columns + col
			if index >= page.End {
				break
			}

			cells = append(cells, m.cell(index, width))
		}

		lines = append(lines, m.styledLine(strings.Join(cells, m.styles.Screen.Render(" "))))
	}

	return lines
}

func (m *Session) cell(index, width int) string {
	name := m.displayed[index].Name
	atCursor := index == m.cursor
	selected := m.selection.Selected(index)
	upgradable := m.catalog.IsUpdatable(name)
	text := layout.Cell(name, width, atCursor, selected, upgradable)

	switch {
	case atCursor:
		return m.styles.Cursor.Render(text)
	case selected:
		return m.styles.Selected.Render(text)
	case upgradable:
		return m.styles.Upgradable.Render(text)
	default:
		return m.styles.Cell.Render(text)
	}
}

const detailPrefix = "Full name: "

// footer returns the lines below the grid: eight, plus the rows the
// detail line wraps onto.
func (m *Session) footer() []string {
	separator := m.plainLine(m.styles.Separator, strings.Repeat("─", m.geometry.Cols))
	menu := m.menu()

	lines := make([]string, 0, layout.FooterRows+m.detailRows-1)
	lines = append(lines, separator, m.statusLine())
	lines = append(lines, m.detail()...)

	return append(lines,
		separator,
		m.plainLine(m.styles.Menu, menu[0]),
		m.plainLine(m.styles.Menu, menu[1]),
		m.plainLine(m.styles.Menu, menu[2]),
		m.promptLine(),
	)
}

// detail wraps the full name of the package under the cursor onto
// exactly detailRows lines.
func (m *Session) detail() []string {
	text := detailPrefix
	if pkg, ok := m.current(); ok {
		text += pkg.Name
	}

	wrapped := layout.Wrap(text, m.geometry.Cols)
	lines := make([]string, m.detailRows)

	for i := range lines {
		line := ""
		if i < len(wrapped) {
			line = wrapped[i]
		}

		lines[i] = m.plainLine(m.styles.Detail, line)
	}

	return lines
}

func (m *Session) statusLine() string {
	var parts []string

	switch m.view.Mode() {
	case domain.ShowSearch:
		parts = append(parts, "Search: "+m.view.Term())
	case domain.ShowUpdatable:
		parts = append(parts, "Showing: updatable only")
	case domain.ShowAll:
	}

	if m.status != "" {
		parts = append(parts, m.status)
	}

	style := m.styles.Status
	if m.statusError {
		style = m.styles.ErrorText
	}

	return m.plainLine(style, strings.Join(parts, "  "))
}

func (m *Session) menu() [3]string {
	k := m.keys
	title := cases.Title(language.English)

	hint := func(bindings ...key.Binding) string {
		parts := make([]string, 0, len(bindings))
		for _, b := range bindings {
			if !b.Enabled() {
				continue
			}

			help := b.Help()
			parts = append(parts, title.String(help.Desc)+": "+help.Key)
		}

		return strings.Join(parts, "  ")
	}

	move := fmt.Sprintf("Move: arrows or %s/%s/%s/%s",
		k.Up.Help().Key, k.Down.Help().Key, k.Left.Help().Key, k.Right.Help().Key)

	return [3]string{
		move + "  " + hint(k.NextPage, k.PrevPage, k.Select),
		hint(k.Search, k.OnlyUpdatable, k.SelectAllUpdatable),
		hint(k.Update, k.Remove, k.Help, k.Quit),
	}
}

func (m *Session) promptLine() string {
	switch m.mode {
	case ModeSearch, ModeConfirm:
		return m.styledLine(m.input.View())
	case ModeReloading:
		return m.styledLine(m.spinner.View() + m.styles.Prompt.Render(" Reloading package lists..."))
	case ModeMutating:
		return m.plainLine(m.styles.Prompt, "Running package tool...")
	case ModeBrowse, ModeHelp:
	}

	return m.plainLine(m.styles.Prompt, "Your choice: ")
}

// plainLine fits unstyled text to the screen width and styles it.
func (m *Session) plainLine(style lipgloss.Style, text string) string {
	return style.Render(layout.Fit(text, m.geometry.Cols))
}

// styledLine truncates already styled text to the screen width and pads
// it with the screen background.
func (m *Session) styledLine(text string) string {
	cols := m.geometry.Cols
	text = ansi.Truncate(text, cols, "")

	if pad := cols - lipgloss.Width(text); pad > 0 {
		text += m.styles.Screen.Render(strings.Repeat(" ", pad))
	}

	return text
}
