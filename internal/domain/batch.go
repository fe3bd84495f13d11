// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"fmt"
	"strings"
	"time"
)

// Action is the package tool verb of a batch mutation.
type Action string

// Supported batch actions. Updating an installed package is an install
// of its newer version.
const (
	ActionInstall Action = "install"
	ActionRemove  Action = "remove"
)

// Verb returns the word shown to the user for the action.
func (a Action) Verb() string {
	if a == ActionInstall {
		return "update"
	}

	return string(a)
}

// Valid reports whether a is a supported action.
func (a Action) Valid() bool {
	return a == ActionInstall || a == ActionRemove
}

// ParseAction maps a user supplied word onto an action.
func ParseAction(word string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(word)) {
	case "install", "update", "upgrade":
		return ActionInstall, nil
	case "remove", "uninstall":
		return ActionRemove, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, word)
	}
}

// Batch is one mutation over an explicit list of package names.
type Batch struct {
	Action Action   `json:"action"`
	Names  []string `json:"names"`
}

// NewBatch validates and builds a batch.
func NewBatch(action Action, names []string) (Batch, error) {
	if !action.Valid() {
		return Batch{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if len(names) == 0 {
		return Batch{}, ErrNoSelection
	}

	for _, name := range names {
		if name == "" || strings.ContainsAny(name, " \t\n") || strings.HasPrefix(name, "-") {
			return Batch{}, fmt.Errorf("%w: %q", ErrInvalidPackage, name)
		}
	}

	return Batch{Action: action, Names: append([]string(nil), names...)}, nil
}

// BatchResult is the classified outcome of a batch mutation.
type BatchResult struct {
	Batch    Batch         `json:"batch"`
	Command  []string      `json:"command"`
	Success  bool          `json:"success"`
	Error    error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Summary returns the one line result shown after the batch ran.
func (r *BatchResult) Summary() string {
	if r.Success {
		return fmt.Sprintf("Batch %s of %d package(s) completed successfully.", r.Batch.Action.Verb(), len(r.Batch.Names))
	}

	info := GetErrorInfo(r.Error, "", false)

	line := fmt.Sprintf("Batch %s of %d package(s) failed: %s", r.Batch.Action.Verb(), len(r.Batch.Names), info.Message)
	if len(info.Suggestions) > 0 {
		line += " (" + info.Suggestions[0] + ")"
	}

	return line
}
