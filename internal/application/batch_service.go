// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package application holds the use cases driven by the TUI and the CLI.
package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/appman/internal/domain"
)

// ErrEmptyCommand is returned when the package adapter produced no argv.
var ErrEmptyCommand = errors.New("empty batch command")

// BatchService runs batch mutations through the package tool while the
// terminal belongs to the child process.
type BatchService struct {
	commander   domain.BatchCommander
	runner      domain.CommandRunner
	logger      *log.Logger
	acknowledge bool
}

// NewBatchService creates a service that waits for Enter after each run.
func NewBatchService(commander domain.BatchCommander, runner domain.CommandRunner, logger *log.Logger) *BatchService {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &BatchService{
		commander:   commander,
		runner:      runner,
		logger:      logger.With("component", "batch"),
		acknowledge: true,
	}
}

// SetAcknowledge controls the "Press Enter to continue..." pause.
func (s *BatchService) SetAcknowledge(acknowledge bool) {
	s.acknowledge = acknowledge
}

// Command returns the argument vector Run would execute for batch.
func (s *BatchService) Command(batch domain.Batch) []string {
	return s.commander.BatchCommand(batch)
}

// Run executes batch attached to stdio and reports its outcome. A failed
// package tool is not an error of Run: it is classified into the result.
// The returned error is reserved for batches that could not be attempted.
func (s *BatchService) Run(ctx context.Context, batch domain.Batch, stdio domain.Stdio) (*domain.BatchResult, error) {
	argv := s.commander.BatchCommand(batch)
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	out := stdio.Out
	if out == nil {
		out = io.Discard
	}

	_, _ = fmt.Fprintf(out, "Preparing to run: %s\n", strings.Join(argv, " "))

	s.logger.Info("batch started", "action", batch.Action, "count", len(batch.Names))

	start := time.Now()
	err := s.runner.ExecuteInteractive(ctx, stdio, argv[0], argv[1:]...)

	result := &domain.BatchResult{
		Batch:    batch,
		Command:  argv,
		Success:  err == nil,
		Duration: time.Since(start),
	}

	if err != nil {
		result.Error = fmt.Errorf("%w: %w", domain.ErrBatchFailed, err)
		s.logger.Error("batch failed", "action", batch.Action, "err", err, "elapsed", result.Duration)
	} else {
		s.logger.Info("batch succeeded", "action", batch.Action, "elapsed", result.Duration)
	}

	_, _ = fmt.Fprintln(out, result.Summary())

	if s.acknowledge {
		_, _ = fmt.Fprint(out, "Press Enter to continue...")
		waitForLine(stdio.In)
		_, _ = fmt.Fprintln(out)
	}

	return result, nil
}

// waitForLine blocks until a newline or EOF is read. It reads one byte at
// a time so nothing past the newline is taken from the terminal.
func waitForLine(in io.Reader) {
	if in == nil {
		return
	}

	buf := make([]byte, 1)

	for {
		n, err := in.Read(buf)
		if n > 0 && buf[0] == '\n' {
			return
		}

		if err != nil {
			return
		}
	}
}
