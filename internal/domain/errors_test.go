// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/janderssonse/appman/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGetErrorInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		pkg         string
		wantMessage string
	}{
		{"nil error", nil, "", ""},
		{"dpkg lock", errors.New("E: Could not get lock /var/lib/dpkg/lock-frontend"), "", "Package database is locked"},
		{"sudo refused", errors.New("user is not in the sudoers file"), "", "Permission denied"},
		{"missing package", errors.New("E: Unable to locate package nope"), "nope", "Package 'nope' not found"},
		{"missing tool", errors.New(`exec: "sudo": executable file not found in $PATH`), "", "Package or tool not found"},
		{"broken deps", errors.New("The following packages have unmet dependencies"), "", "Unmet dependencies"},
		{"plain exit", errors.New("exit status 100"), "", "Package tool exited with an error"},
		{"unknown", errors.New("something odd"), "", "Operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := domain.GetErrorInfo(tt.err, tt.pkg, false)
			assert.Equal(t, tt.wantMessage, info.Message)
		})
	}
}

func TestFormatErrorMessage(t *testing.T) {
	t.Parallel()

	err := errors.New("exit status 100")

	short := domain.FormatErrorMessage(err, "", false)
	assert.Equal(t, "✗ Package tool exited with an error (Read the package tool output above)", short)

	verbose := domain.FormatErrorMessage(err, "", true)
	assert.Contains(t, verbose, "Technical details: exit status 100")
	assert.Contains(t, verbose, "Suggestions:")
}

func TestExitError(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 100")

	tests := []struct {
		name    string
		err     *domain.ExitError
		wantMsg string
	}{
		{"with cause", domain.NewExitError(22, "Batch failed", cause), "Batch failed: exit status 100"},
		{"without cause", domain.NewExitError(2, "Invalid usage", nil), "Invalid usage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}

	var target *domain.ExitError

	wrapped := fmt.Errorf("run: %w", domain.NewExitError(22, "Batch failed", cause))
	assert.ErrorAs(t, wrapped, &target)
	assert.Equal(t, 22, target.Code)
	assert.ErrorIs(t, wrapped, cause)
}
