// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package testutil provides testify mocks for the domain ports.
package testutil

import (
	"context"

	"github.com/janderssonse/appman/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCommandRunner mocks the CommandRunner port for testing.
type MockCommandRunner struct {
	mock.Mock
}

// ExecuteWithOutput mocks command execution with output.
func (m *MockCommandRunner) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	callArgs := []any{ctx, name}
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	result := m.Called(callArgs...)

	return result.String(0), result.Error(1)
}

// ExecuteInteractive mocks interactive command execution. The stdio
// argument is not matched; tests assert on the argument vector.
func (m *MockCommandRunner) ExecuteInteractive(ctx context.Context, _ domain.Stdio, name string, args ...string) error {
	callArgs := []any{ctx, name}
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	return m.Called(callArgs...).Error(0)
}

// CommandExists mocks command existence check.
func (m *MockCommandRunner) CommandExists(name string) bool {
	return m.Called(name).Bool(0)
}

// MockPackageManager mocks the PackageManager port for testing.
type MockPackageManager struct {
	mock.Mock
}

// Installed mocks the installed packages query.
func (m *MockPackageManager) Installed(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Upgradable mocks the upgradable packages query.
func (m *MockPackageManager) Upgradable(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// BatchCommand mocks argument vector construction.
func (m *MockPackageManager) BatchCommand(batch domain.Batch) []string {
	args := m.Called(batch)
	if result := args.Get(0); result != nil {
		if argv, ok := result.([]string); ok {
			return argv
		}
	}

	return nil
}

// StubPackageManager is a fixed-output PackageManager for session tests
// that need many reloads without setting up expectations for each.
type StubPackageManager struct {
	InstalledOutput  string
	UpgradableOutput string
	InstalledErr     error
	UpgradableErr    error
	Calls            int
}

// Installed returns the canned installed output.
func (s *StubPackageManager) Installed(context.Context) (string, error) {
	s.Calls++
	return s.InstalledOutput, s.InstalledErr
}

// Upgradable returns the canned upgradable output.
func (s *StubPackageManager) Upgradable(context.Context) (string, error) {
	return s.UpgradableOutput, s.UpgradableErr
}

// BatchCommand returns the default apt argument vector.
func (s *StubPackageManager) BatchCommand(batch domain.Batch) []string {
	return append([]string{"sudo", "apt-get", string(batch.Action), "-y"}, batch.Names...)
}
