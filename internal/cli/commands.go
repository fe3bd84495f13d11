// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/tui/models"
	"github.com/urfave/cli/v3"
)

func (app *CLI) commands() []*cli.Command {
	return []*cli.Command{
		app.createListCommand(),
		app.createBatchCommand(domain.ActionInstall, "Install or upgrade packages",
			"appman install vim curl        # upgrade two packages"),
		app.createBatchCommand(domain.ActionRemove, "Remove packages",
			"appman remove --yes cowsay     # remove without asking"),
		app.createKeysCommand(),
		app.createVersionCommand(),
	}
}

// createListCommand prints the displayed list the browser would start with.
func (app *CLI) createListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List installed packages",
		Description: `Print installed packages, sorted by name.

Examples:
  appman list                     # all installed packages
  appman list --upgradable        # packages with a pending upgrade
  appman list --search '^lib'     # case-insensitive regular expression
  appman list --json              # structured output`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "upgradable",
				Aliases: []string{"u"},
				Usage:   "only packages with a pending upgrade",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "filter names with a case-insensitive regular expression",
			},
		},
		Action: app.handleListAction,
	}
}

func (app *CLI) handleListAction(ctx context.Context, cmd *cli.Command) error {
	catalogs, _ := app.services()

	catalog, err := app.loadCatalog(ctx, catalogs)
	if err != nil {
		return err
	}

	view := domain.View{}
	if cmd.Bool("upgradable") {
		view = view.ToggleUpdatable()
	}

	// A search term replaces the updatable-only view, as in the browser.
	if term := cmd.String("search"); term != "" {
		if !domain.ValidSearch(term) {
			app.out.Warningf("invalid expression %q, showing all packages", term)
		}

		view = view.WithSearch(term)
	}

	packages := catalog.Display(view)
	names := domain.Names(packages)

	switch {
	case app.json:
		updatable := make([]string, 0, len(names))

		for _, name := range names {
			if catalog.IsUpdatable(name) {
				updatable = append(updatable, name)
			}
		}

		app.out.JSONResult("success", map[string]any{
			"count":      len(names),
			"packages":   names,
			"upgradable": updatable,
		})
	case app.plain:
		app.out.PlainList(names)
	default:
		for _, name := range names {
			marker := " "
			if catalog.IsUpdatable(name) {
				marker = "*"
			}

			_, _ = fmt.Fprintf(app.deps.Stdout, "%s %s\n", marker, name)
		}

		app.out.Progressf("%d packages (%d updatable)", len(names), catalog.UpdatableLen())
	}

	return nil
}

// createBatchCommand runs one batch mutation outside the browser.
func (app *CLI) createBatchCommand(action domain.Action, usage, example string) *cli.Command {
	return &cli.Command{
		Name:      string(action),
		Usage:     usage,
		ArgsUsage: "PACKAGE...",
		Description: fmt.Sprintf(`Run sudo apt-get %s -y over the named packages in one invocation.
The command is printed before it runs. Without --yes a confirmation is asked.

Examples:
  %s`, action, example),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.runBatch(ctx, action, cmd.Args().Slice())
		},
	}
}

func (app *CLI) runBatch(ctx context.Context, action domain.Action, names []string) error {
	batch, err := domain.NewBatch(action, names)
	if err != nil {
		return domain.NewExitError(ExitUsageError, domain.FormatErrorMessage(err, "", false), err)
	}

	if !app.yes {
		title := fmt.Sprintf("Are you sure you want to %s %d selected package(s)?", action.Verb(), len(batch.Names))

		ok, err := app.deps.Confirm(title)

		switch {
		case errors.Is(err, huh.ErrUserAborted):
			return domain.NewExitError(ExitInterruptError, "interrupted", nil)
		case err != nil:
			return domain.NewExitError(ExitGeneralError, "confirmation failed", err)
		case !ok:
			app.out.Warningf("Cancelled.")
			return nil
		}
	}

	_, batches := app.services()
	batches.SetAcknowledge(false)

	result, err := batches.Run(ctx, batch, app.stdio())
	if err != nil {
		return domain.NewExitError(ExitGeneralError, "could not run package tool", err)
	}

	if app.json {
		app.out.JSONResult(statusOf(result), map[string]any{
			"action":   result.Batch.Action,
			"packages": result.Batch.Names,
			"command":  result.Command,
			"duration": result.Duration.String(),
		})
	}

	if !result.Success {
		return domain.NewExitError(ExitAppError, result.Summary(), result.Error)
	}

	return nil
}

func statusOf(result *domain.BatchResult) string {
	if result.Success {
		return "success"
	}

	return "error"
}

// createKeysCommand prints the effective key bindings.
func (app *CLI) createKeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Show the effective key bindings",
		Action: func(_ context.Context, _ *cli.Command) error {
			bindings := app.cfg.Keys.Bindings()

			switch {
			case app.json:
				keys := make(map[string]any, len(bindings))
				for _, b := range bindings {
					keys[b.Action] = b.Key
				}

				app.out.JSONResult("success", map[string]any{"keys": keys})
			case app.plain:
				for _, b := range bindings {
					app.out.PlainKeyValue(b.Action, models.DisplayKey(b.Key))
				}
			default:
				_, _ = fmt.Fprintln(app.deps.Stdout, app.out.Bold("Key bindings"))

				for _, b := range bindings {
					_, _ = fmt.Fprintf(app.deps.Stdout, "  %-22s %s\n", b.Action, models.DisplayKey(b.Key))
				}
			}

			return nil
		},
	}
}

// createVersionCommand creates version command.
func (app *CLI) createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			app.out.SuccessResult(Version, "")

			return nil
		},
	}
}

// huhConfirm asks on the terminal with a huh form.
func huhConfirm(title string) (bool, error) {
	var ok bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}

	return ok, nil
}
