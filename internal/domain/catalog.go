// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Catalog holds the master and updatable package lists of one enumeration
// pass. Both lists are sorted by name and never modified after
// construction; a rebuild produces a new Catalog. IsUpdatable relies on
// the updatable list staying sorted.
type Catalog struct {
	master    []Package
	updatable []Package
}

// NewCatalog sorts copies of the given lists into a catalog.
func NewCatalog(installed, upgradable []Package) *Catalog {
	return &Catalog{
		master:    sortedCopy(installed),
		updatable: sortedCopy(upgradable),
	}
}

// LoadCatalog runs both enumeration queries and builds a catalog from
// their output. A failing query contributes an empty list; the returned
// catalog is never nil and the error reports which queries failed.
func LoadCatalog(ctx context.Context, enumerator PackageEnumerator) (*Catalog, error) {
	var errs []error

	installedOut, err := enumerator.Installed(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: installed packages: %w", ErrEnumeration, err))
		installedOut = ""
	}

	upgradableOut, err := enumerator.Upgradable(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: upgradable packages: %w", ErrEnumeration, err))
		upgradableOut = ""
	}

	catalog := NewCatalog(ParsePackages(installedOut), ParsePackages(upgradableOut))

	return catalog, errors.Join(errs...)
}

// Master returns the sorted master list. Callers must not modify it.
func (c *Catalog) Master() []Package {
	return c.master
}

// Updatable returns the sorted updatable list. Callers must not modify it.
func (c *Catalog) Updatable() []Package {
	return c.updatable
}

// Len returns the number of packages in the master list.
func (c *Catalog) Len() int {
	return len(c.master)
}

// UpdatableLen returns the number of packages with a pending upgrade.
func (c *Catalog) UpdatableLen() int {
	return len(c.updatable)
}

// IsUpdatable reports whether name has a pending upgrade.
func (c *Catalog) IsUpdatable(name string) bool {
	_, found := slices.BinarySearchFunc(c.updatable, name, func(pkg Package, target string) int {
		return strings.Compare(pkg.Name, target)
	})

	return found
}

func sortedCopy(packages []Package) []Package {
	sorted := slices.Clone(packages)
	slices.SortStableFunc(sorted, func(a, b Package) int {
		return strings.Compare(a.Name, b.Name)
	})

	return sorted
}
