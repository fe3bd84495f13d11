// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package console formats the non-interactive output of appman commands.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"golang.org/x/term"
)

// Output writes command results to Out and messages to Err.
type Output struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
	JSON    bool
	Plain   bool

	getenv func(string) string
}

// New creates an Output over the given streams.
func New(out, errOut io.Writer) *Output {
	return &Output{Out: out, Err: errOut, getenv: os.Getenv}
}

// Stdio creates an Output over the process streams.
func Stdio() *Output {
	return New(os.Stdout, os.Stderr)
}

// SetMode configures output mode.
func (o *Output) SetMode(verbose, json, plain bool) {
	o.Verbose = verbose
	o.JSON = json
	o.Plain = plain
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// Bold formats text with bold on a terminal and uppercase when piped.
func (o *Output) Bold(text string) string {
	if o.JSON || o.Plain {
		return text
	}

	// no-color.org
	if o.getenv("NO_COLOR") != "" || o.getenv("TERM") == "dumb" {
		return text
	}

	if IsTTY(o.Out) {
		return "\033[1m" + text + "\033[0m"
	}

	return strings.ToUpper(text)
}

// Progressf writes progress messages to Err, only in verbose text mode.
func (o *Output) Progressf(format string, args ...any) {
	if o.Verbose && !o.JSON && !o.Plain {
		fmt.Fprintf(o.Err, format+"\n", args...)
	}
}

// Successf writes success messages to Err in text mode.
func (o *Output) Successf(format string, args ...any) {
	if !o.JSON && !o.Plain {
		fmt.Fprintf(o.Err, "✓ "+format+"\n", args...)
	}
}

// Warningf writes warning messages to Err.
func (o *Output) Warningf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.Err, "warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.Err, "⚠ "+format+"\n", args...)
	}
}

// Errorf writes error messages to Err.
func (o *Output) Errorf(format string, args ...any) {
	if o.Plain {
		fmt.Fprintf(o.Err, "error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(o.Err, "✗ "+format+"\n", args...)
	}
}

// JSONResult writes a structured result with a status field to Out.
func (o *Output) JSONResult(status string, data map[string]any) {
	result := map[string]any{
		"status": status,
	}
	maps.Copy(result, data)

	if err := json.NewEncoder(o.Out).Encode(result); err != nil {
		fmt.Fprintf(o.Err, "error encoding JSON: %v\n", err)
	}
}

// SuccessResult writes result to Out, with an optional message on Err.
func (o *Output) SuccessResult(result any, message string) {
	if message != "" {
		o.Successf("%s", message)
	}

	if o.JSON {
		o.JSONResult("success", map[string]any{"result": result})
		return
	}

	_, _ = fmt.Fprintf(o.Out, "%v\n", result)
}

// ErrorResult reports err, as JSON on Out in JSON mode and always on Err.
func (o *Output) ErrorResult(err error, code int) {
	if o.JSON {
		o.JSONResult("error", map[string]any{
			"error": err.Error(),
			"code":  code,
		})
	}

	o.Errorf("%s", err.Error())
}

// PlainKeyValue writes key:value for machine parsing.
func (o *Output) PlainKeyValue(key, value string) {
	_, _ = fmt.Fprintf(o.Out, "%s:%s\n", key, value)
}

// PlainList writes one item per line.
func (o *Output) PlainList(items []string) {
	for _, item := range items {
		_, _ = fmt.Fprintln(o.Out, item)
	}
}
