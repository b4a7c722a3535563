package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btouchard/monkey/internal/config"
	"github.com/btouchard/monkey/internal/repl"
)

const banner = "Monkey %s mode. Type :help for commands, Ctrl-D to quit.\n"

func (a *app) replCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd, mode)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "evaluation mode: lex or parse (default from config)")
	return cmd
}

func (a *app) runREPL(cmd *cobra.Command, mode string) error {
	cfg := a.cfg.REPL
	if mode != "" {
		if mode != config.ModeLex && mode != config.ModeParse {
			return fmt.Errorf("unknown mode %q (want %s or %s)", mode, config.ModeLex, config.ModeParse)
		}
		cfg.Mode = mode
	}

	term := repl.OpenTerminal(cfg.HistoryFile)
	defer func() {
		if err := term.Close(); err != nil {
			a.log.Warn("saving history failed", "error", err)
		}
	}()

	opts := []repl.Option{repl.WithLogger(a.log)}
	if a.store != nil {
		opts = append(opts, repl.WithStore(a.store))
	}
	r := repl.New(cfg, term, cmd.OutOrStdout(), opts...)

	fmt.Fprintf(cmd.OutOrStdout(), banner, r.Mode())
	return r.Run(cmd.Context())
}
