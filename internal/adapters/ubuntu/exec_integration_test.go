// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package ubuntu_test

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/janderssonse/appman/internal/adapters/platform"
	"github.com/janderssonse/appman/internal/adapters/ubuntu"
	"github.com/janderssonse/appman/internal/application"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTools puts fake package tools first on PATH. Tests using it change
// the process environment and cannot run in parallel.
func fakeTools(t *testing.T, failing ...string) *testutil.FakeBinaryGenerator {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake binaries are shell scripts")
	}

	gen := testutil.NewFakeBinaryGenerator(t.TempDir())
	require.NoError(t, gen.CreatePackageTools(selections, upgradable, failing...))
	require.NoError(t, gen.ValidateBinary("apt-get"))

	t.Setenv("PATH", gen.Dir()+string(os.PathListSeparator)+os.Getenv("PATH"))

	return gen
}

func TestCatalogFromFakeTools(t *testing.T) {
	fakeTools(t)

	manager := ubuntu.NewPackageManager(platform.NewCommandRunner(nil, false), ubuntu.Options{})

	catalog, err := domain.LoadCatalog(context.Background(), manager)
	require.NoError(t, err)

	assert.Equal(t, []string{"adduser", "apt", "linux-image-6.8.0-31-generic", "vim"}, domain.Names(catalog.Master()))
	assert.Equal(t, []string{"curl", "vim"}, domain.Names(catalog.Updatable()))
	assert.True(t, catalog.IsUpdatable("vim"))
	assert.False(t, catalog.IsUpdatable("apt"))
}

func TestBatchThroughFakeTools(t *testing.T) {
	tests := []struct {
		name        string
		names       []string
		wantSuccess bool
	}{
		{"success", []string{"vim", "curl"}, true},
		{"package tool fails", []string{"broken"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := fakeTools(t, "remove -y broken")

			runner := platform.NewCommandRunner(nil, false)
			service := application.NewBatchService(ubuntu.NewPackageManager(runner, ubuntu.Options{}), runner, nil)
			service.SetAcknowledge(false)

			batch, err := domain.NewBatch(domain.ActionRemove, tt.names)
			require.NoError(t, err)

			var out bytes.Buffer

			result, err := service.Run(context.Background(), batch, domain.Stdio{In: strings.NewReader(""), Out: &out, Err: &out})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, result.Success)

			argString := "remove -y " + strings.Join(tt.names, " ")

			sudoCalls, err := gen.Calls("sudo")
			require.NoError(t, err)
			assert.Equal(t, []string{"apt-get " + argString}, sudoCalls)

			aptCalls, err := gen.Calls("apt-get")
			require.NoError(t, err)
			assert.Equal(t, []string{argString}, aptCalls)

			assert.Contains(t, out.String(), "Preparing to run: sudo apt-get "+argString)
		})
	}
}

func TestDryRunSkipsFakeTools(t *testing.T) {
	gen := fakeTools(t)

	runner := platform.NewCommandRunner(nil, true)
	service := application.NewBatchService(ubuntu.NewPackageManager(runner, ubuntu.Options{}), runner, nil)
	service.SetAcknowledge(false)

	var out bytes.Buffer

	result, err := service.Run(context.Background(),
		domain.Batch{Action: domain.ActionInstall, Names: []string{"vim"}},
		domain.Stdio{Out: &out})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, out.String(), "DRY RUN: sudo apt-get install -y vim")

	calls, err := gen.Calls("apt-get")
	require.NoError(t, err)
	assert.Empty(t, calls)
}
