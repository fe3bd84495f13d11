// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"testing"

	"github.com/janderssonse/appman/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEnumerator struct {
	installed     string
	upgradable    string
	installedErr  error
	upgradableErr error
}

func (s stubEnumerator) Installed(context.Context) (string, error) {
	return s.installed, s.installedErr
}

func (s stubEnumerator) Upgradable(context.Context) (string, error) {
	return s.upgradable, s.upgradableErr
}

func packages(names ...string) []domain.Package {
	pkgs := make([]domain.Package, len(names))
	for i, name := range names {
		pkgs[i] = domain.NewPackage(name)
	}

	return pkgs
}

func TestNewCatalog_SortsBothLists(t *testing.T) {
	t.Parallel()

	installed := packages("vim", "bash", "curl", "Zsh", "apt")
	upgradable := packages("vim", "curl")

	catalog := domain.NewCatalog(installed, upgradable)

	assert.Equal(t, []string{"Zsh", "apt", "bash", "curl", "vim"}, domain.Names(catalog.Master()),
		"byte-wise order puts upper case first")
	assert.Equal(t, []string{"curl", "vim"}, domain.Names(catalog.Updatable()))
	assert.Equal(t, "vim", installed[0].Name, "input slices are not reordered")
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	enumerator := stubEnumerator{
		installed:  "vim install\ncurl install\nbash install\n",
		upgradable: "curl/jammy-updates 8.0 amd64 [upgradable from: 7.0]\n",
	}

	catalog, err := domain.LoadCatalog(context.Background(), enumerator)

	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "curl", "vim"}, domain.Names(catalog.Master()))
	assert.Equal(t, []string{"curl"}, domain.Names(catalog.Updatable()))
}

func TestLoadCatalog_QueryFailureYieldsEmptyList(t *testing.T) {
	t.Parallel()

	boom := errors.New("apt exploded")
	enumerator := stubEnumerator{
		installed:     "vim install\n",
		upgradableErr: boom,
	}

	catalog, err := domain.LoadCatalog(context.Background(), enumerator)

	require.Error(t, err)
	require.NotNil(t, catalog)
	require.ErrorIs(t, err, domain.ErrEnumeration)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, catalog.Len())
	assert.Equal(t, 0, catalog.UpdatableLen())
}

func TestCatalog_IsUpdatableMatchesLinearScan(t *testing.T) {
	t.Parallel()

	master := packages("a", "b", "c", "delta", "echo", "foxtrot", "golf", "hotel", "india")
	upgradable := packages("india", "b", "golf", "delta")
	catalog := domain.NewCatalog(master, upgradable)

	require.True(t, sort.SliceIsSorted(catalog.Updatable(), func(i, j int) bool {
		return catalog.Updatable()[i].Name < catalog.Updatable()[j].Name
	}))

	names := domain.Names(catalog.Updatable())
	for _, pkg := range append(master, packages("zulu", "", "aa")...) {
		assert.Equal(t, slices.Contains(names, pkg.Name), catalog.IsUpdatable(pkg.Name), "name %q", pkg.Name)
	}
}

func TestCatalog_EmptyCatalog(t *testing.T) {
	t.Parallel()

	catalog := domain.NewCatalog(nil, nil)

	assert.Equal(t, 0, catalog.Len())
	assert.False(t, catalog.IsUpdatable("vim"))
	assert.Empty(t, catalog.Display(domain.View{}))
}
