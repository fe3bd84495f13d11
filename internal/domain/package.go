// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"bufio"
	"strings"
)

// MaxNameLength bounds a normalized package name in bytes.
const MaxNameLength = 255

// Package is one entry of the catalog, identified by its normalized name.
type Package struct {
	Name  string `json:"name"`
	Lower string `json:"-"` // precomputed for case-insensitive matching
}

// NewPackage builds a package from an already normalized name.
func NewPackage(name string) Package {
	return Package{Name: name, Lower: strings.ToLower(name)}
}

// NormalizeName extracts a package name from one enumerator record.
// The first whitespace-delimited token is used and any "/qualifier"
// suffix (apt's "curl/jammy-updates") is stripped. It reports false
// when the record carries no usable token.
func NormalizeName(record string) (string, bool) {
	fields := strings.Fields(record)
	if len(fields) == 0 {
		return "", false
	}

	name := fields[0]
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		name = name[:idx]
	}

	if name == "" {
		return "", false
	}

	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}

	return name, true
}

// ParsePackages turns line oriented enumerator output into packages.
// Malformed lines are skipped silently. Order and duplicates are kept.
func ParsePackages(output string) []Package {
	var packages []Package

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		name, ok := NormalizeName(scanner.Text())
		if !ok {
			continue
		}

		packages = append(packages, NewPackage(name))
	}

	return packages
}

// Names returns the names of the given packages in order.
func Names(packages []Package) []string {
	names := make([]string, len(packages))
	for i, pkg := range packages {
		names[i] = pkg.Name
	}

	return names
}
