// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/tui/layout"
)

// dispatch handles one key in browse mode. Unbound keys leave the
// session untouched and the cached frame is reused.
func (m *Session) dispatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.displayed)
	pageSize := m.pageSize()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Down):
		m.cursor, _ = layout.Down(m.cursor, n)
	case key.Matches(msg, m.keys.Up):
		m.cursor, _ = layout.Up(m.cursor)
	case key.Matches(msg, m.keys.Left):
		m.cursor, _ = layout.Left(m.cursor)
	case key.Matches(msg, m.keys.Right):
		m.cursor, _ = layout.Right(m.cursor, n)
	case key.Matches(msg, m.keys.NextPage):
		m.cursor, _ = layout.NextPage(m.cursor, pageSize, n)
	case key.Matches(msg, m.keys.PrevPage):
		m.cursor, _ = layout.PrevPage(m.cursor, pageSize)

	case key.Matches(msg, m.keys.Select):
		m.selection.Toggle(m.cursor)

	case key.Matches(msg, m.keys.OnlyUpdatable):
		m.view = m.view.ToggleUpdatable()
		m.refresh()

	case key.Matches(msg, m.keys.SelectAllUpdatable):
		added := m.selection.SelectMatching(func(i int) bool {
			return m.catalog.IsUpdatable(m.displayed[i].Name)
		})
		m.logger.Debug("selected updatable", "added", added)

	case key.Matches(msg, m.keys.Search):
		return m, m.prompt(ModeSearch, "Search (regex): ")

	case key.Matches(msg, m.keys.Remove):
		return m, m.confirmBatch(domain.ActionRemove)
	case key.Matches(msg, m.keys.Update):
		return m, m.confirmBatch(domain.ActionInstall)

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp

	default:
		return m, nil
	}

	m.cursor = layout.Clamp(m.cursor, len(m.displayed))
	m.markDirty()

	return m, nil
}

// prompt switches to a line input mode.
func (m *Session) prompt(mode Mode, text string) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.Prompt = text
	m.markDirty()

	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// confirmBatch asks for confirmation of action over the selection. With
// nothing selected the key has no effect beyond a status hint.
func (m *Session) confirmBatch(action domain.Action) tea.Cmd {
	batch, err := domain.NewBatch(action, m.selectedNames())
	if err != nil {
		m.setStatus(domain.FormatErrorMessage(err, "", false), true)
		m.markDirty()

		return nil
	}

	m.pending = batch

	return m.prompt(ModeConfirm, fmt.Sprintf("Are you sure you want to %s %d selected package(s)? (y/N) ",
		action.Verb(), len(batch.Names)))
}

func (m *Session) endPrompt() {
	m.input.Blur()
	m.mode = ModeBrowse
	m.markDirty()
}

func (m *Session) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.endPrompt()
		return m, nil

	case KeyEnter:
		term := m.input.Value()
		m.endPrompt()

		m.view = m.view.WithSearch(term)
		m.refresh()

		if term != "" && !domain.ValidSearch(term) {
			m.setStatus("Invalid expression, showing all packages", true)
		} else {
			m.setStatus("", false)
		}

		m.logger.Debug("search", "term", term, "matches", len(m.displayed))

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.markDirty()

	return m, cmd
}

func (m *Session) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.endPrompt()
		m.setStatus("Cancelled.", false)

		return m, nil

	case KeyEnter:
		answer := strings.TrimSpace(m.input.Value())
		m.endPrompt()

		if !strings.HasPrefix(answer, "y") && !strings.HasPrefix(answer, "Y") {
			m.setStatus("Cancelled.", false)
			return m, nil
		}

		return m, m.startBatch(m.pending)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.markDirty()

	return m, cmd
}

// startBatch releases the terminal to the package tool.
func (m *Session) startBatch(batch domain.Batch) tea.Cmd {
	m.mode = ModeMutating
	m.markDirty()

	if m.batches == nil {
		return func() tea.Msg {
			return batchDoneMsg{err: ErrNoBatchRunner}
		}
	}

	m.logger.Debug("releasing terminal", "action", batch.Action, "count", len(batch.Names))

	cmd := newBatchExec(m.ctx, m.batches, batch)

	return m.exec(cmd, func(err error) tea.Msg {
		return batchDoneMsg{result: cmd.result, err: err}
	})
}

// handleBatchDone records the outcome and always reloads the catalog.
func (m *Session) handleBatchDone(msg batchDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.result != nil:
		m.setStatus(msg.result.Summary(), !msg.result.Success)
	case msg.err != nil:
		m.setStatus(domain.FormatErrorMessage(msg.err, "", false), true)
	}

	m.pending = domain.Batch{}
	m.mode = ModeReloading
	m.markDirty()

	return m, tea.Batch(m.spinner.Tick, m.reload())
}

func (m *Session) reload() tea.Cmd {
	ctx, load, current := m.ctx, m.load, m.catalog

	return func() tea.Msg {
		if load == nil {
			return catalogLoadedMsg{catalog: current}
		}

		return catalogLoadedMsg{catalog: load(ctx)}
	}
}
