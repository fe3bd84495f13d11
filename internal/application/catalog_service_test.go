// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/janderssonse/appman/internal/application"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Load(t *testing.T) {
	t.Parallel()

	pm := &testutil.MockPackageManager{}
	pm.On("Installed", mock.Anything).Return("vim install\nbash install\n", nil)
	pm.On("Upgradable", mock.Anything).Return("", errors.New("apt missing"))

	catalog := application.NewCatalogService(pm, nil).Load(context.Background())

	assert.Equal(t, []string{"bash", "vim"}, domain.Names(catalog.Master()))
	assert.Equal(t, 0, catalog.UpdatableLen())
	pm.AssertExpectations(t)
}

func TestCatalogService_LoadInitialRequiresPackages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		installed    string
		installedErr error
	}{
		{"empty output", "", nil},
		{"query failure", "", errors.New("dpkg missing")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pm := &testutil.MockPackageManager{}
			pm.On("Installed", mock.Anything).Return(tt.installed, tt.installedErr)
			pm.On("Upgradable", mock.Anything).Return("", nil)

			catalog, err := application.NewCatalogService(pm, nil).LoadInitial(context.Background())

			require.ErrorIs(t, err, domain.ErrEmptyCatalog)
			assert.Nil(t, catalog)
		})
	}
}

func TestCatalogService_List(t *testing.T) {
	t.Parallel()

	pm := &testutil.MockPackageManager{}
	pm.On("Installed", mock.Anything).Return("vim install\nbash install\ncurl install\n", nil)
	pm.On("Upgradable", mock.Anything).Return("curl/jammy 2.0 amd64\n", nil)

	service := application.NewCatalogService(pm, nil)

	all, err := service.List(context.Background(), domain.View{})
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "curl", "vim"}, domain.Names(all))

	updatable, err := service.List(context.Background(), domain.View{}.ToggleUpdatable())
	require.NoError(t, err)
	assert.Equal(t, []string{"curl"}, domain.Names(updatable))

	searched, err := service.List(context.Background(), domain.View{}.WithSearch("^v"))
	require.NoError(t, err)
	assert.Equal(t, []string{"vim"}, domain.Names(searched))
}
