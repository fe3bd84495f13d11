// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrBinaryNotExecutable indicates a binary file is not executable.
var ErrBinaryNotExecutable = errors.New("binary is not executable")

// BinaryBehavior defines how a fake binary should behave. Outputs and
// ExitCodes are keyed by the full argument string ("$*").
type BinaryBehavior struct {
	Name      string
	Outputs   map[string]string
	ExitCodes map[string]int
	// Exec makes the binary run its arguments as a command, like sudo.
	Exec bool
}

// FakeBinaryGenerator writes shell scripts that stand in for system tools.
// Every invocation is appended to <name>.calls in the binary directory.
type FakeBinaryGenerator struct {
	binaryDir string
}

// NewFakeBinaryGenerator creates a generator writing into binaryDir.
func NewFakeBinaryGenerator(binaryDir string) *FakeBinaryGenerator {
	return &FakeBinaryGenerator{binaryDir: binaryDir}
}

// Dir returns the directory to prepend to PATH.
func (g *FakeBinaryGenerator) Dir() string {
	return g.binaryDir
}

// CreateFakeBinary creates a fake binary with specified behavior.
func (g *FakeBinaryGenerator) CreateFakeBinary(behavior BinaryBehavior) error {
	if err := os.MkdirAll(g.binaryDir, 0o755); err != nil { //nolint:gosec
		return err
	}

	path := filepath.Join(g.binaryDir, behavior.Name)

	return os.WriteFile(path, []byte(g.script(behavior)), 0o755) //nolint:gosec // must be executable
}

// CreatePackageTools installs fake dpkg, apt, apt-get and sudo. apt-get
// exits with 100 for any argument string listed in failing.
func (g *FakeBinaryGenerator) CreatePackageTools(installed, upgradable string, failing ...string) error {
	exitCodes := make(map[string]int, len(failing))
	for _, args := range failing {
		exitCodes[args] = 100
	}

	for _, behavior := range []BinaryBehavior{
		{Name: "dpkg", Outputs: map[string]string{"--get-selections": installed}},
		{Name: "apt", Outputs: map[string]string{"list --upgradable": upgradable}},
		{Name: "apt-get", ExitCodes: exitCodes},
		{Name: "sudo", Exec: true},
	} {
		if err := g.CreateFakeBinary(behavior); err != nil {
			return fmt.Errorf("create %s: %w", behavior.Name, err)
		}
	}

	return nil
}

// Calls returns the argument strings name was invoked with, in order.
func (g *FakeBinaryGenerator) Calls(name string) ([]string, error) {
	content, err := os.ReadFile(filepath.Join(g.binaryDir, name+".calls"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n"), nil
}

// ValidateBinary checks that name exists and is executable.
func (g *FakeBinaryGenerator) ValidateBinary(name string) error {
	info, err := os.Stat(filepath.Join(g.binaryDir, name))
	if err != nil {
		return err
	}

	if info.Mode()&0o111 == 0 {
		return fmt.Errorf("%w: %s", ErrBinaryNotExecutable, name)
	}

	return nil
}

func (g *FakeBinaryGenerator) script(behavior BinaryBehavior) string {
	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "# Fake %s binary\n", behavior.Name)
	fmt.Fprintf(&b, "printf '%%s\\n' \"$*\" >> %s\n", shellQuote(filepath.Join(g.binaryDir, behavior.Name+".calls")))

	if behavior.Exec {
		b.WriteString("exec \"$@\"\n")

		return b.String()
	}

	b.WriteString("case \"$*\" in\n")

	for _, args := range sortedKeys(behavior.Outputs) {
		fmt.Fprintf(&b, "  %s) printf '%%s' %s ;;\n", shellQuote(args), shellQuote(behavior.Outputs[args]))
	}

	b.WriteString("esac\n")

	for _, args := range sortedKeys(behavior.ExitCodes) {
		fmt.Fprintf(&b, "if [ \"$*\" = %s ]; then echo \"E: fake failure\" >&2; exit %d; fi\n",
			shellQuote(args), behavior.ExitCodes[args])
	}

	b.WriteString("exit 0\n")

	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
