// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides the appman command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/janderssonse/appman/internal/adapters/platform"
	"github.com/janderssonse/appman/internal/adapters/ubuntu"
	"github.com/janderssonse/appman/internal/application"
	"github.com/janderssonse/appman/internal/config"
	"github.com/janderssonse/appman/internal/console"
	"github.com/janderssonse/appman/internal/domain"
	"github.com/janderssonse/appman/internal/logging"
	"github.com/janderssonse/appman/internal/tui"
	"github.com/janderssonse/appman/internal/tui/layout"
	"github.com/janderssonse/appman/internal/tui/models"
	"github.com/urfave/cli/v3"
)

// Exit codes follow standard Unix conventions for better scripting support.
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Generic failure (catch-all)
	ExitUsageError      = 2  // Invalid command line usage
	ExitConfigError     = 3  // Configuration file error
	ExitPermissionError = 4  // Permission denied
	ExitNotFoundError   = 5  // No packages found
	ExitDependencyError = 10 // dpkg or apt missing
	ExitInterruptError  = 14 // User interrupted (Ctrl+C)
	ExitAppError        = 22 // Package install/removal failed
)

// Version is set at build time.
var Version = "dev" //nolint:gochecknoglobals // set with -ldflags

// Confirmer asks a yes/no question.
type Confirmer func(title string) (bool, error)

// Launcher runs an interactive session until it quits.
type Launcher func(ctx context.Context, session *models.Session) error

// Dependencies are the process-level collaborators of the CLI. Zero
// values select the real implementations.
type Dependencies struct {
	Runner  domain.CommandRunner
	Confirm Confirmer
	Launch  Launcher
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// CLI wires configuration, adapters and services behind urfave/cli.
type CLI struct {
	app  *cli.Command
	deps Dependencies
	out  *console.Output

	configPath string
	logFile    string
	debug      bool
	dryRun     bool
	yes        bool
	json       bool
	plain      bool
	verbose    bool

	cfg    config.Config
	logger *log.Logger
	closer io.Closer
}

// NewCLI creates the command tree.
func NewCLI(deps Dependencies) *CLI {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}

	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}

	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	if deps.Confirm == nil {
		deps.Confirm = huhConfirm
	}

	if deps.Launch == nil {
		deps.Launch = func(ctx context.Context, session *models.Session) error {
			return tui.NewApp(session).Run(ctx)
		}
	}

	app := &CLI{
		deps:   deps,
		out:    console.New(deps.Stdout, deps.Stderr),
		cfg:    config.Default(),
		logger: logging.Discard(),
	}

	app.app = &cli.Command{
		Name:      config.AppName,
		Usage:     "Browse, update and remove installed Debian packages",
		Version:   Version,
		Suggest:   true,
		Writer:    deps.Stdout,
		ErrWriter: deps.Stderr,
		Description: `Without a command appman opens a full-screen browser over the packages
installed with dpkg. Packages with a pending upgrade are marked with '*'.
Select packages and update or remove them in one apt-get run.

EXAMPLES:
  appman                          # browse installed packages
  appman list --upgradable        # print packages with pending upgrades
  appman remove --yes cowsay      # remove without asking
  appman --dry-run install vim    # print the apt-get command only`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the TOML configuration file",
				Value:       config.DefaultConfigPath(),
				Destination: &app.configPath,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "log file path (overrides [log] file)",
				Destination: &app.logFile,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "log at debug level",
				Destination: &app.debug,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Aliases:     []string{"n"},
				Usage:       "print package tool commands instead of running them",
				Destination: &app.dryRun,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "automatically answer yes to all prompts",
				Destination: &app.yes,
			},
			&cli.BoolFlag{
				Name:        "json",
				Aliases:     []string{"j"},
				Usage:       "output structured JSON results",
				Destination: &app.json,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "output plain text without formatting for scripts",
				Destination: &app.plain,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Usage:       "show progress messages to stderr",
				Destination: &app.verbose,
			},
		},
		Before:   app.before,
		After:    app.after,
		Action:   app.browse,
		Commands: app.commands(),
	}

	return app
}

// App returns a command tree over the process streams.
func App() *cli.Command {
	return NewCLI(Dependencies{}).app
}

// Run executes the CLI application.
func (app *CLI) Run(ctx context.Context, args []string) error {
	return app.app.Run(ctx, args)
}

// before loads the configuration and opens the log file.
func (app *CLI) before(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if app.json && app.plain {
		return ctx, domain.NewExitError(ExitUsageError, "cannot use both --json and --plain flags simultaneously", nil)
	}

	app.out.SetMode(app.verbose, app.json, app.plain)

	cfg, err := config.Load(config.ExpandPath(app.configPath), config.LegacyKeyFile)
	if err != nil {
		return ctx, domain.NewExitError(ExitConfigError, "invalid configuration", err)
	}

	if app.logFile != "" {
		cfg.Log.File = app.logFile
	}

	if app.debug {
		cfg.Log.Level = "debug"
	}

	app.cfg = cfg

	logger, closer, err := logging.Open(config.ExpandPath(cfg.Log.File), cfg.Log.Level)
	if err != nil {
		app.out.Warningf("logging disabled: %v", err)

		return ctx, nil
	}

	app.logger = logger
	app.closer = closer
	app.logger.Debug("configuration loaded", "config", app.configPath, "dry_run", app.dryRun)

	return ctx, nil
}

func (app *CLI) after(_ context.Context, _ *cli.Command) error {
	if app.closer == nil {
		return nil
	}

	return app.closer.Close()
}

// services builds the package manager adapter and the application
// services over it.
func (app *CLI) services() (*application.CatalogService, *application.BatchService) {
	runner := app.deps.Runner
	if runner == nil {
		runner = platform.NewCommandRunner(app.logger, app.dryRun)
	}

	manager := ubuntu.NewPackageManager(runner, ubuntu.Options{
		Privilege: app.cfg.Commands.Privilege,
		Tool:      app.cfg.Commands.Tool,
		ExtraArgs: app.cfg.Commands.ExtraArgs,
	})

	return application.NewCatalogService(manager, app.logger), application.NewBatchService(manager, runner, app.logger)
}

func (app *CLI) stdio() domain.Stdio {
	return domain.Stdio{In: app.deps.Stdin, Out: app.deps.Stdout, Err: app.deps.Stderr}
}

// browse is the root action: it runs the interactive session.
func (app *CLI) browse(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Present() {
		return domain.NewExitError(ExitUsageError, fmt.Sprintf("'%s' is not a command", cmd.Args().First()), nil)
	}

	catalogs, batches := app.services()

	catalog, err := app.loadCatalog(ctx, catalogs)
	if err != nil {
		return err
	}

	app.out.Successf("%d applications loaded (%d updatable)", catalog.Len(), catalog.UpdatableLen())

	session := models.NewSession(ctx, models.Options{
		Catalog:  catalog,
		Loader:   catalogs.Load,
		Batches:  batches,
		Keys:     models.NewKeyMap(app.cfg.Keys),
		Geometry: probe(app.deps.Stdout),
	})

	if err := app.deps.Launch(ctx, session); err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.NewExitError(ExitInterruptError, "interrupted", nil)
		}

		if app.verbose {
			return domain.NewExitError(ExitGeneralError, "Failed to launch TUI", err)
		}

		return domain.NewExitError(ExitGeneralError, "Failed to launch interactive interface (terminal required)", nil)
	}

	app.logger.Info("session ended")

	return nil
}

func (app *CLI) loadCatalog(ctx context.Context, catalogs *application.CatalogService) (*domain.Catalog, error) {
	catalog, err := catalogs.LoadInitial(ctx)
	switch {
	case errors.Is(err, ubuntu.ErrToolMissing):
		return nil, domain.NewExitError(ExitDependencyError, "dpkg and apt are required", err)
	case err != nil:
		return nil, domain.NewExitError(ExitNotFoundError, domain.ErrEmptyCatalog.Error(), err)
	}

	return catalog, nil
}

// probe measures the terminal behind w, or returns the fallback size.
func probe(w io.Writer) layout.Geometry {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return layout.Fallback()
	}

	return layout.Probe(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
