// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

import (
	"context"
	"errors"
	"io"

	"github.com/janderssonse/appman/internal/domain"
)

// ErrNoBatchRunner is reported when a batch is confirmed without a runner.
var ErrNoBatchRunner = errors.New("no batch runner configured")

// batchExec runs a batch as a tea.ExecCommand: bubbletea restores the
// terminal, hands over its streams, calls Run and takes the terminal back.
type batchExec struct {
	ctx    context.Context //nolint:containedctx // lives for one exec
	runner BatchRunner
	batch  domain.Batch
	stdio  domain.Stdio
	result *domain.BatchResult
}

func newBatchExec(ctx context.Context, runner BatchRunner, batch domain.Batch) *batchExec {
	return &batchExec{ctx: ctx, runner: runner, batch: batch}
}

// Run executes the batch. A failed package tool is carried in the result,
// so the returned error only covers batches that could not start.
func (c *batchExec) Run() error {
	result, err := c.runner.Run(c.ctx, c.batch, c.stdio)
	c.result = result

	return err
}

// SetStdin implements tea.ExecCommand.
func (c *batchExec) SetStdin(r io.Reader) {
	c.stdio.In = r
}

// SetStdout implements tea.ExecCommand.
func (c *batchExec) SetStdout(w io.Writer) {
	c.stdio.Out = w
}

// SetStderr implements tea.ExecCommand.
func (c *batchExec) SetStderr(w io.Writer) {
	c.stdio.Err = w
}
