// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package ubuntu implements the dpkg/apt package manager adapter.
package ubuntu

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/janderssonse/appman/internal/domain"
)

// ErrToolMissing is returned when a required package tool is not on PATH.
var ErrToolMissing = errors.New("package tool not found")

// Default commands.
var (
	DefaultPrivilege = []string{"sudo"}
	DefaultTool      = "apt-get"
)

// Options configure the commands the adapter runs.
type Options struct {
	// Privilege is prepended to every mutation, e.g. ["sudo"]. An empty
	// slice runs the tool directly.
	Privilege []string
	// Tool is the mutation program, "apt-get" by default.
	Tool string
	// ExtraArgs are passed to the tool after the action and -y.
	ExtraArgs []string
}

// PackageManager implements domain.PackageManager on top of dpkg and apt.
type PackageManager struct {
	runner domain.CommandRunner
	opts   Options
}

// NewPackageManager creates an apt adapter. Zero option fields take the
// defaults.
func NewPackageManager(runner domain.CommandRunner, opts Options) *PackageManager {
	if opts.Privilege == nil {
		opts.Privilege = DefaultPrivilege
	}

	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}

	return &PackageManager{runner: runner, opts: opts}
}

// Installed returns the dpkg selections still marked install or hold.
// Packages selected for deinstall or purge are left out.
func (p *PackageManager) Installed(ctx context.Context) (string, error) {
	if !p.runner.CommandExists("dpkg") {
		return "", fmt.Errorf("%w: dpkg", ErrToolMissing)
	}

	output, err := p.runner.ExecuteWithOutput(ctx, "dpkg", "--get-selections")
	if err != nil {
		return "", fmt.Errorf("dpkg --get-selections: %w", err)
	}

	return keepLines(output, func(fields []string) bool {
		return len(fields) >= 2 && (fields[1] == "install" || fields[1] == "hold")
	}), nil
}

// Upgradable returns apt's list of packages with a pending upgrade, without
// the "Listing..." banner.
func (p *PackageManager) Upgradable(ctx context.Context) (string, error) {
	if !p.runner.CommandExists("apt") {
		return "", fmt.Errorf("%w: apt", ErrToolMissing)
	}

	output, err := p.runner.ExecuteWithOutput(ctx, "apt", "list", "--upgradable")
	if err != nil {
		return "", fmt.Errorf("apt list --upgradable: %w", err)
	}

	return keepLines(output, func(fields []string) bool {
		return !strings.HasPrefix(fields[0], "Listing")
	}), nil
}

// BatchCommand builds [privilege..., tool, action, -y, extra..., names...].
func (p *PackageManager) BatchCommand(batch domain.Batch) []string {
	argv := slices.Clone(p.opts.Privilege)
	argv = append(argv, p.opts.Tool, string(batch.Action), "-y")
	argv = append(argv, p.opts.ExtraArgs...)

	return append(argv, batch.Names...)
}

func keepLines(output string, keep func(fields []string) bool) string {
	var b strings.Builder

	for line := range strings.Lines(output) {
		fields := strings.Fields(line)
		if len(fields) == 0 || !keep(fields) {
			continue
		}

		b.WriteString(strings.TrimRight(line, "\r\n"))
		b.WriteByte('\n')
	}

	return b.String()
}
