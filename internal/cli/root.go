package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/seed"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// App is the composition root: it owns the config, logger and the single
// todo store for the lifetime of one command.
type App struct {
	Out, Err      io.Writer
	IsInteractive func() bool
	RunTUI        func(src tui.Source, opts tui.Options) error
	Now           func() time.Time

	flags    rootFlags
	cfg      *config.Config
	log      *slog.Logger
	store    *store.Store
	closeLog func() error
}

type rootFlags struct {
	config, seed, theme, logLevel, logFile string
	noColor                                bool
}

// usageError maps to exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

// NewApp wires the real terminal.
func NewApp() *App {
	return &App{
		Out: os.Stdout,
		Err: os.Stderr,
		IsInteractive: func() bool {
			return ui.IsTTY(os.Stdin) && ui.IsTTY(os.Stdout)
		},
		RunTUI: tui.Run,
		Now:    time.Now,
	}
}

// NewRootCmd creates the top-level "tada" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tada",
		Short:         "A tiny todo list for the terminal",
		Long:          "tada lists your todos by section (life, work) and lets you add, edit and delete them.\nTodos live in memory for the session; a seed file provides the starting list.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := app.IsInteractive()
			defer app.teardown()
			if err := app.setup(interactive); err != nil {
				return err
			}
			if !interactive {
				return app.list(listOptions{})
			}
			return app.runTUI()
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.config, "config", "", "config file (TOML)")
	pf.StringVar(&app.flags.seed, "seed", "", "seed file with the starting todos (YAML or JSON)")
	pf.StringVar(&app.flags.theme, "theme", "", "theme: classic, neon or mono")
	pf.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&app.flags.logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&app.flags.noColor, "no-color", false, "disable colour output")

	root.AddCommand(
		newListCmd(app),
		newVersionCmd(app),
	)
	return root
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(app.Err, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(app.Err)
		fmt.Fprintln(app.Err, root.UsageString())
		return 2
	}
	return 1
}

// setup loads configuration, applies flags and builds the logger and store.
func (a *App) setup(tuiOwnsTerminal bool) error {
	cfg, err := config.Load(a.flags.config)
	if err != nil {
		return err
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	if err := ui.SetTheme(cfg.Theme); err != nil {
		return usageError{err}
	}
	ui.SetColorForcing(false, cfg.NoColor)

	lvl, _ := cfg.LogLevel()
	logger, closeLog, err := logging.Open(cfg.Log.File, lvl, tuiOwnsTerminal)
	if err != nil {
		return err
	}
	a.log, a.closeLog = logger, closeLog

	todos, err := a.loadSeed()
	if err != nil {
		return err
	}
	a.store = store.New(store.WithLogger(logger), store.WithTodos(todos...))
	a.log.Debug("store ready", "todos", a.store.Len(), "seed", cfg.Seed.File)
	return nil
}

func (a *App) applyFlags(cfg *config.Config) {
	if a.flags.seed != "" {
		cfg.Seed.File = a.flags.seed
	}
	if a.flags.theme != "" {
		cfg.Theme = a.flags.theme
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if a.flags.logFile != "" {
		cfg.Log.File = a.flags.logFile
	}
	if a.flags.noColor {
		cfg.NoColor = true
	}
}

// loadSeed picks the starting todos: the configured seed file, else a
// legacy todos.json in the working directory, else the built-in samples.
func (a *App) loadSeed() ([]model.Todo, error) {
	path := a.cfg.Seed.File
	if path == "" {
		path = seed.Discover()
	}
	if path == "" {
		if a.cfg.Seed.Builtin {
			return seed.Default(), nil
		}
		return nil, nil
	}
	todos, err := seed.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.cfg.Seed.File = path
	return todos, nil
}

func (a *App) teardown() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

func (a *App) runTUI() error {
	err := a.RunTUI(a.store, tui.Options{
		DateFormat:     a.cfg.DateFormat,
		Placeholder:    a.cfg.Placeholder,
		Category:       a.cfg.Category(),
		HeaderImageURL: a.cfg.HeaderImageURL,
		Logger:         a.log,
		Now:            a.Now,
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.Out, "tada "+Version)
			return nil
		},
	}
}
