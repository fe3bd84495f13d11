// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for appman.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/janderssonse/appman/internal/cli"
	"github.com/janderssonse/appman/internal/config"
	"github.com/janderssonse/appman/internal/domain"
)

func main() {
	os.Exit(run())
}

func run() int {
	// One session at a time: two sessions would race on apt's state.
	lockPath := config.DefaultLockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create state directory: %v\n", err)

		return cli.ExitGeneralError
	}

	lock := flock.New(lockPath)

	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to acquire process lock: %v\n", err)

		return cli.ExitGeneralError
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another appman instance is already running\n")

		return cli.ExitGeneralError
	}

	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release process lock: %v\n", unlockErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := cli.App().Run(ctx, os.Args); err != nil {
		exitErr := &domain.ExitError{}
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "%s\n", exitErr.Error())

			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return cli.ExitUsageError
	}

	return cli.ExitSuccess
}
