// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models provides the Bubble Tea model of the package browser.
package models

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/tui/layout"
	"github.com/janderssonse/appman/internal/tui/styles"
)

// Mode is the modal state of the input dispatcher.
type Mode int

// Session modes.
const (
	ModeBrowse    Mode = iota // single key commands
	ModeSearch                // line input of a search term
	ModeConfirm               // line input of a yes/no answer
	ModeMutating              // terminal released to the package tool
	ModeReloading             // catalog being rebuilt
	ModeHelp                  // key binding overlay
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeSearch:
		return "search"
	case ModeConfirm:
		return "confirm"
	case ModeMutating:
		return "mutating"
	case ModeReloading:
		return "reloading"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CatalogLoader rebuilds the catalog after a mutation.
type CatalogLoader func(ctx context.Context) *domain.Catalog

// BatchRunner runs a confirmed batch mutation.
type BatchRunner interface {
	Run(ctx context.Context, batch domain.Batch, stdio domain.Stdio) (*domain.BatchResult, error)
}

// ExecLauncher hands a command the terminal. tea.Exec in production.
type ExecLauncher func(cmd tea.ExecCommand, fn tea.ExecCallback) tea.Cmd

// Options configure a Session.
type Options struct {
	Catalog  *domain.Catalog
	Loader   CatalogLoader
	Batches  BatchRunner
	Keys     KeyMap
	Styles   *styles.Styles
	Geometry layout.Geometry
	// Exec defaults to tea.Exec.
	Exec ExecLauncher
	// HelpStyle is the glamour style of the help overlay, "dark" by default.
	HelpStyle string
}

// catalogLoadedMsg carries a rebuilt catalog.
type catalogLoadedMsg struct {
	catalog *domain.Catalog
}

// batchDoneMsg reports the end of a batch mutation.
type batchDoneMsg struct {
	result *domain.BatchResult
	err    error
}

// Session is the package browser model. It owns the catalog, the
// displayed list and its selection, the cursor and the modal state.
//
//nolint:containedctx // TUI models require context for proper cancellation propagation
type Session struct {
	ctx     context.Context
	styles  *styles.Styles
	keys    KeyMap
	load    CatalogLoader
	batches BatchRunner
	exec    ExecLauncher
	logger  *log.Logger

	catalog   *domain.Catalog
	view      domain.View
	displayed []domain.Package
	selection *domain.Selection
	cursor    int
	geometry  layout.Geometry
	// detailRows is the number of footer rows the wrapped detail line of
	// the longest displayed name needs.
	detailRows int

	mode    Mode
	input   textinput.Model
	spinner spinner.Model
	help    *Help
	pending domain.Batch

	status      string
	statusError bool

	frame   string
	dirty   bool
	renders int

	quitting bool
}

// NewSession creates a session over an initial catalog.
func NewSession(ctx context.Context, opts Options) *Session {
	if opts.Catalog == nil {
		opts.Catalog = domain.NewCatalog(nil, nil)
	}

	if opts.Styles == nil {
		opts.Styles = styles.New()
	}

	if opts.Exec == nil {
		opts.Exec = tea.Exec
	}

	if opts.Keys.Quit.Keys() == nil {
		opts.Keys = DefaultKeyMap()
	}

	input := textinput.New()
	input.CharLimit = domain.MaxNameLength

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = opts.Styles.WarningText

	session := &Session{
		ctx:      ctx,
		styles:   opts.Styles,
		keys:     opts.Keys,
		load:     opts.Loader,
		batches:  opts.Batches,
		exec:     opts.Exec,
		logger:   log.With("component", "session"),
		catalog:  opts.Catalog,
		geometry: opts.Geometry.OrFallback(),
		input:    input,
		spinner:  spin,
		help:     NewHelp(opts.Keys, opts.HelpStyle),
	}

	session.refresh()

	return session
}

// Init implements tea.Model.
func (m *Session) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.geometry = layout.Geometry{Rows: msg.Height, Cols: msg.Width}.OrFallback()
		m.help.SetWidth(m.geometry.Cols)
		m.measureDetail()
		m.markDirty()

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case batchDoneMsg:
		return m.handleBatchDone(msg)

	case catalogLoadedMsg:
		m.catalog = msg.catalog
		m.view = m.view.Reloaded()
		m.refresh()
		m.mode = ModeBrowse
		m.logger.Debug("catalog installed", "installed", m.catalog.Len(), "updatable", m.catalog.UpdatableLen())

		return m, nil

	case spinner.TickMsg:
		if m.mode != ModeReloading {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)
		m.markDirty()

		return m, cmd
	}

	if m.mode == ModeSearch || m.mode == ModeConfirm {
		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)
		m.markDirty()

		return m, cmd
	}

	return m, nil
}

func (m *Session) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyCtrlC {
		return m.quit()
	}

	switch m.mode {
	case ModeBrowse:
		return m.dispatch(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeHelp:
		m.mode = ModeBrowse
		m.markDirty()

		return m, nil
	case ModeMutating, ModeReloading:
		// No input is dispatched until the new catalog is installed.
		return m, nil
	}

	return m, nil
}

func (m *Session) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.markDirty()

	return m, tea.Quit
}

// refresh rederives the displayed list from the catalog and view. The
// selection is resized to the new list and the cursor returns to the top.
func (m *Session) refresh() {
	m.displayed = m.catalog.Display(m.view)
	m.selection = domain.NewSelection(len(m.displayed))
	m.cursor = 0
	m.measureDetail()
	m.markDirty()
}

// measureDetail sizes the detail rows so every displayed name fits in
// full, leaving at least one grid row.
func (m *Session) measureDetail() {
	spare := m.geometry.SpareRows()
	extra := 0

	for _, pkg := range m.displayed {
		extra = max(extra, layout.WrapRows(detailPrefix+pkg.Name, m.geometry.Cols)-1)
		if extra >= spare {
			extra = spare

			break
		}
	}

	m.detailRows = 1 + extra
}

// pageSize returns the grid cells left after the header and footer.
func (m *Session) pageSize() int {
	return m.geometry.PageSizeWith(m.detailRows - 1)
}

func (m *Session) markDirty() {
	m.dirty = true
}

func (m *Session) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

func (m *Session) current() (domain.Package, bool) {
	if m.cursor < 0 || m.cursor >= len(m.displayed) {
		return domain.Package{}, false
	}

	return m.displayed[m.cursor], true
}

func (m *Session) selectedNames() []string {
	indices := m.selection.Indices()
	names := make([]string, 0, len(indices))

	for _, i := range indices {
		names = append(names, m.displayed[i].Name)
	}

	return names
}

// Mode returns the current modal state.
func (m *Session) Mode() Mode {
	return m.mode
}

// Quitting reports whether the session has ended.
func (m *Session) Quitting() bool {
	return m.quitting
}
