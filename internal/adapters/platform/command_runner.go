// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package platform provides shared command execution functionality.
package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/appman/internal/domain"
)

// CommandRunner implements the CommandRunner port for real system commands.
type CommandRunner struct {
	logger *log.Logger
	dryRun bool
}

// NewCommandRunner creates a new command runner. In dry-run mode
// interactive commands are printed instead of executed; queries still run.
func NewCommandRunner(logger *log.Logger, dryRun bool) *CommandRunner {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &CommandRunner{
		logger: logger,
		dryRun: dryRun,
	}
}

// DryRun reports whether interactive commands are suppressed.
func (r *CommandRunner) DryRun() bool {
	return r.dryRun
}

// ExecuteWithOutput runs a command and returns the output. The child runs
// in the C locale so its output is parseable regardless of the user's
// language settings.
func (r *CommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	start := time.Now()

	// #nosec G204 - fixed query commands assembled by the package adapter
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()

	r.logger.Debug("query finished",
		"cmd", commandLine(name, args),
		"bytes", len(output),
		"elapsed", time.Since(start),
		"err", err)

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("command failed: %w (stderr: %s)", err, msg)
		}

		return "", fmt.Errorf("command failed: %w", err)
	}

	return string(output), nil
}

// ExecuteInteractive runs a command attached to the given streams and waits
// for it to exit. Proxy settings are propagated so package downloads work
// behind a proxy.
func (r *CommandRunner) ExecuteInteractive(ctx context.Context, stdio domain.Stdio, name string, args ...string) error {
	line := commandLine(name, args)

	if r.dryRun {
		r.logger.Info("dry run", "cmd", line)

		if stdio.Out != nil {
			_, _ = fmt.Fprintf(stdio.Out, "DRY RUN: %s\n", line)
		}

		return nil
	}

	// #nosec G204 - argv built from validated batch names
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), ProxyEnv()...)
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	r.logger.Info("running", "cmd", line)

	if err := cmd.Start(); err != nil {
		r.logger.Error("spawn failed", "cmd", line, "err", err)
		return fmt.Errorf("%w: %w", domain.ErrSpawnFailed, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Warn("command exited", "cmd", line, "code", exitErr.ExitCode())
		}

		return fmt.Errorf("command failed: %w", err)
	}

	r.logger.Info("command succeeded", "cmd", line)

	return nil
}

// CommandExists checks if a command is available on the system.
func (r *CommandRunner) CommandExists(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
