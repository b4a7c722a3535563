package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/btouchard/monkey/internal/compiler/ast"
	"github.com/btouchard/monkey/internal/compiler/token"
	"github.com/btouchard/monkey/internal/config"
	"github.com/btouchard/monkey/internal/logging"
	"github.com/btouchard/monkey/internal/store"
)

// app carries the state shared by every subcommand once the persistent
// flags have been applied.
type app struct {
	cfgFile string
	verbose bool
	dbPath  string
	noColor bool

	cfg   *config.Config
	log   *slog.Logger
	store *store.Store
}

func newApp() *app {
	return &app{log: logging.Discard()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "monkey",
		Short: "Lexer and let-statement parser for the Monkey language",
		Long: `monkey tokenizes Monkey source and parses its let statements.

Without a subcommand it starts an interactive REPL.

Commands:
  repl     interactive prompt (lex or parse mode)
  lex      print the tokens of sources given as arguments, a file or stdin
  parse    print the let statements and diagnostics of one source
  history  list, show or delete recorded sessions`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd, "")
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file, TOML or YAML (default $"+config.EnvConfig+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "session database; recording is enabled when set")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.replCmd(),
		a.lexCmd(),
		a.parseCmd(),
		a.historyCmd(),
	)
	return root
}

// Execute runs the command line and reports a failure on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	defer a.close()

	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// setup loads the configuration, applies the persistent flags over it and
// opens the session store when recording is enabled.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(a.cfgFile)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Store.Enabled = true
		cfg.Store.Path = a.dbPath
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.noColor {
		cfg.REPL.Color = false
	}
	if err := cfg.ExpandPaths(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(cfg.Log, cmd.ErrOrStderr())

	if cfg.Store.Enabled {
		s, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		a.store = s
		a.log.Debug("session store opened", "path", cfg.Store.Path)
	}
	return nil
}

func (a *app) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing session store failed", "error", err)
	}
	a.store = nil
}

// record journals one evaluation when a store is open. Failures are logged
// only.
func (a *app) record(ctx context.Context, source, mode string, toks []token.Token, prog *ast.Program, errCount int) {
	if a.store == nil {
		return
	}
	session, err := a.store.Record(ctx, source, mode, toks, prog, errCount)
	if err != nil {
		a.log.Warn("recording session failed", "error", err)
		return
	}
	a.log.Debug("session recorded", "id", session.ID, "mode", mode)
}

func (a *app) requireStore() (*store.Store, error) {
	if a.store == nil {
		return nil, fmt.Errorf("no session store: pass --db or set store.enabled in the config")
	}
	return a.store, nil
}
