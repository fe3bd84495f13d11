// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package tui runs the package browser on the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janderssonse/appman/internal/tui/models"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when the TUI is launched in a non-terminal environment.
var ErrNoTerminal = errors.New("TUI requires a terminal environment")

// App owns the terminal for the lifetime of one session. The alternate
// screen and raw mode are released on every exit path by bubbletea.
type App struct {
	session *models.Session
	in      io.Reader
	out     io.Writer
}

// Option configures an App.
type Option func(*App)

// WithIO replaces the process stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// NewApp creates an App for session.
func NewApp(session *models.Session, opts ...Option) *App {
	app := &App{session: session, in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Run starts the program and blocks until the session quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	if !isTerminal(a.in) || !isTerminal(a.out) {
		return fmt.Errorf("terminal check failed: %w", ErrNoTerminal)
	}

	program := tea.NewProgram(
		a.session,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(a.in),
		tea.WithOutput(a.out),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("TUI application failed: %w", err)
	}

	return nil
}

// isTerminal reports whether stream is a file attached to a terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
