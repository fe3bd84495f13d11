// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"regexp"
	"strings"
)

// FilterMode selects which packages the displayed list is derived from.
type FilterMode int

// Filter modes. Exactly one is active at a time.
const (
	ShowAll FilterMode = iota
	ShowUpdatable
	ShowSearch
)

func (m FilterMode) String() string {
	switch m {
	case ShowAll:
		return "all"
	case ShowUpdatable:
		return "updatable"
	case ShowSearch:
		return "search"
	default:
		return "unknown"
	}
}

// View is the filter state of a session. The search term and the
// updatable-only toggle exclude each other: whichever was activated last
// wins and clears the other.
type View struct {
	mode FilterMode
	term string
}

// Mode returns the active filter mode.
func (v View) Mode() FilterMode {
	return v.mode
}

// Term returns the active search term, empty unless the mode is ShowSearch.
func (v View) Term() string {
	return v.term
}

// ToggleUpdatable flips between the updatable-only view and the full
// list. Any search term is dropped.
func (v View) ToggleUpdatable() View {
	if v.mode == ShowUpdatable {
		return View{mode: ShowAll}
	}

	return View{mode: ShowUpdatable}
}

// WithSearch activates term as the search filter. An empty term returns
// to the full list.
func (v View) WithSearch(term string) View {
	if term == "" {
		return View{mode: ShowAll}
	}

	return View{mode: ShowSearch, term: term}
}

// Reloaded returns the view kept across a catalog reload: updatable-only
// survives, a search term does not.
func (v View) Reloaded() View {
	if v.mode == ShowSearch {
		return View{mode: ShowAll}
	}

	return v
}

// Display derives the displayed list for view. The result is a fresh
// slice; calling it again with the same inputs yields an equal list.
func (c *Catalog) Display(view View) []Package {
	switch view.mode {
	case ShowUpdatable:
		return append([]Package(nil), c.updatable...)
	case ShowSearch:
		return Search(c.master, view.term)
	default:
		return append([]Package(nil), c.master...)
	}
}

// Search filters packages by a case-insensitive regular expression,
// preserving order. An expression that does not compile filters nothing.
func Search(packages []Package, term string) []Package {
	if term == "" {
		return append([]Package(nil), packages...)
	}

	match, ok := matcher(term)
	if !ok {
		return append([]Package(nil), packages...)
	}

	filtered := make([]Package, 0, len(packages))

	for _, pkg := range packages {
		if match(pkg) {
			filtered = append(filtered, pkg)
		}
	}

	return filtered
}

// ValidSearch reports whether term compiles as a search expression.
func ValidSearch(term string) bool {
	_, ok := matcher(term)
	return ok
}

func matcher(term string) (func(Package) bool, bool) {
	// Plain words need no regex engine.
	if regexp.QuoteMeta(term) == term {
		lowered := strings.ToLower(term)
		return func(pkg Package) bool {
			lower := pkg.Lower
			if lower == "" {
				lower = strings.ToLower(pkg.Name)
			}

			return strings.Contains(lower, lowered)
		}, true
	}

	re, err := regexp.Compile("(?i)" + term)
	if err != nil {
		return nil, false
	}

	return func(pkg Package) bool {
		return re.MatchString(pkg.Name)
	}, true
}
