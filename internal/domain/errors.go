// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"errors"
	"strings"
)

// Common domain errors.
var (
	ErrEnumeration    = errors.New("package enumeration failed")
	ErrEmptyCatalog   = errors.New("could not retrieve any installed packages")
	ErrNoSelection    = errors.New("no packages selected")
	ErrUnknownAction  = errors.New("unknown batch action")
	ErrInvalidPackage = errors.New("invalid package name")
	ErrBatchFailed    = errors.New("batch operation failed")
	ErrSpawnFailed    = errors.New("could not start package tool")
)

// ErrorInfo provides user-friendly error information.
type ErrorInfo struct {
	Message     string   // User-friendly message
	Suggestions []string // Actionable suggestions
	ShowDetails bool     // Whether to show technical details
}

type errorMatcher struct {
	patterns []string
	getInfo  func(pkg string, verbose bool) ErrorInfo
}

// errorMatchers maps fragments of package tool failures onto messages.
// The first matching entry wins, so more specific patterns come first.
func errorMatchers() []errorMatcher {
	return []errorMatcher{
		{
			patterns: []string{"could not get lock", "unable to acquire the dpkg frontend lock", "lock-frontend"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Package database is locked",
					Suggestions: []string{"Wait for the other package manager to finish"},
					ShowDetails: verbose,
				}
			},
		},
		{
			patterns: []string{"permission", "denied", "incorrect password", "not in the sudoers"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Permission denied",
					Suggestions: []string{"Check that your user may run sudo", "Check the sudo password"},
					ShowDetails: verbose,
				}
			},
		},
		{
			patterns: []string{"unable to locate", "not found", "no such", "has no installation candidate"},
			getInfo: func(pkg string, verbose bool) ErrorInfo {
				if pkg != "" {
					return ErrorInfo{
						Message:     "Package '" + pkg + "' not found",
						Suggestions: []string{"Update package lists: sudo apt-get update"},
						ShowDetails: verbose,
					}
				}

				return ErrorInfo{
					Message:     "Package or tool not found",
					Suggestions: []string{"Update package lists: sudo apt-get update"},
					ShowDetails: verbose,
				}
			},
		},
		{
			patterns: []string{"network", "temporary failure resolving", "connection", "timeout"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Network connection failed",
					Suggestions: []string{"Check your internet connection"},
					ShowDetails: verbose,
				}
			},
		},
		{
			patterns: []string{"unmet dependencies", "depends", "broken packages"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Unmet dependencies",
					Suggestions: []string{"Try: sudo apt-get --fix-broken install"},
					ShowDetails: verbose,
				}
			},
		},
		{
			patterns: []string{"exit status"},
			getInfo: func(_ string, verbose bool) ErrorInfo {
				return ErrorInfo{
					Message:     "Package tool exited with an error",
					Suggestions: []string{"Read the package tool output above"},
					ShowDetails: verbose,
				}
			},
		},
	}
}

// GetErrorInfo analyzes an error and returns user-friendly information.
func GetErrorInfo(err error, packageName string, verbose bool) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	errStr := strings.ToLower(err.Error())

	for _, matcher := range errorMatchers() {
		for _, pattern := range matcher.patterns {
			if strings.Contains(errStr, pattern) {
				return matcher.getInfo(packageName, verbose)
			}
		}
	}

	return ErrorInfo{
		Message:     "Operation failed",
		Suggestions: []string{"Run with --debug and check the log file"},
		ShowDetails: verbose,
	}
}

// FormatErrorMessage formats an error for display.
func FormatErrorMessage(err error, packageName string, verbose bool) string {
	info := GetErrorInfo(err, packageName, verbose)

	var result strings.Builder

	result.WriteString("✗ ")
	result.WriteString(info.Message)

	if info.ShowDetails && err != nil {
		result.WriteString("\n  Technical details: ")
		result.WriteString(err.Error())
	}

	if len(info.Suggestions) > 0 && !verbose {
		result.WriteString(" (")
		result.WriteString(info.Suggestions[0])
		result.WriteString(")")
	} else if len(info.Suggestions) > 0 {
		result.WriteString("\n  Suggestions:")

		for _, suggestion := range info.Suggestions {
			result.WriteString("\n    • ")
			result.WriteString(suggestion)
		}
	}

	return result.String()
}
