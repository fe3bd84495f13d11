// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package application

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/appman/internal/domain"
)

// CatalogService rebuilds package catalogs from the enumerator.
type CatalogService struct {
	enumerator domain.PackageEnumerator
	logger     *log.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(enumerator domain.PackageEnumerator, logger *log.Logger) *CatalogService {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &CatalogService{
		enumerator: enumerator,
		logger:     logger.With("component", "catalog"),
	}
}

// Load runs a full enumeration pass. Query failures are logged and yield
// empty lists; the catalog is always usable.
func (s *CatalogService) Load(ctx context.Context) *domain.Catalog {
	catalog, err := domain.LoadCatalog(ctx, s.enumerator)
	if err != nil {
		s.logger.Warn("enumeration incomplete", "err", err)
	}

	s.logger.Debug("catalog loaded", "installed", catalog.Len(), "updatable", catalog.UpdatableLen())

	return catalog
}

// LoadInitial loads the catalog the session starts with. An empty master
// list is fatal here: there is nothing to browse.
func (s *CatalogService) LoadInitial(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := domain.LoadCatalog(ctx, s.enumerator)
	if catalog.Len() == 0 {
		if err != nil {
			return nil, errors.Join(domain.ErrEmptyCatalog, err)
		}

		return nil, domain.ErrEmptyCatalog
	}

	if err != nil {
		s.logger.Warn("enumeration incomplete", "err", err)
	}

	return catalog, nil
}

// List returns the packages visible under view.
func (s *CatalogService) List(ctx context.Context, view domain.View) ([]domain.Package, error) {
	catalog, err := s.LoadInitial(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.Display(view), nil
}
