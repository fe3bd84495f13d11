// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"io"
)

// PackageEnumerator runs the package queries and returns their raw line
// oriented output. Implemented by the package manager adapter.
type PackageEnumerator interface {
	// Installed returns one record per installed package.
	Installed(ctx context.Context) (string, error)

	// Upgradable returns one record per package with a pending upgrade.
	Upgradable(ctx context.Context) (string, error)
}

// BatchCommander builds the argument vector of a privileged batch
// mutation. The first element is the program to execute.
type BatchCommander interface {
	BatchCommand(batch Batch) []string
}

// PackageManager is the full port of the package manager adapter.
type PackageManager interface {
	PackageEnumerator
	BatchCommander
}

// Stdio bundles the streams handed to an interactive child process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// CommandRunner defines the interface for executing system commands.
type CommandRunner interface {
	// ExecuteWithOutput runs a command and returns its standard output.
	ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error)

	// ExecuteInteractive runs a command attached to the given streams and
	// waits for it to exit. A non-zero exit is reported as an error.
	ExecuteInteractive(ctx context.Context, stdio Stdio, name string, args ...string) error

	// CommandExists checks if a command is available on the system.
	CommandExists(name string) bool
}
