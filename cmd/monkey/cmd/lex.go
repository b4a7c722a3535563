package cmd

import (
	"github.com/spf13/cobra"

	"github.com/btouchard/monkey/internal/compiler/lexer"
	"github.com/btouchard/monkey/internal/config"
	"github.com/btouchard/monkey/internal/render"
)

func (a *app) lexCmd() *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "lex [source...]",
		Short: "Print the tokens of each source",
		Long: `Print the token stream of each source, EOF included.

Every argument is lexed on its own with a fresh lexer. Without arguments the
source is read from --file or stdin.`,
		Example: `  monkey lex 'let five = 5;' '10 != 9'
  monkey lex -f examples/first.mk --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			sources, err := readSources(cmd, file, args)
			if err != nil {
				return err
			}

			printer := render.NewPrinter(cmd.OutOrStdout(), f, a.cfg.REPL.Color)
			for _, src := range sources {
				toks := lexer.Tokenize(src.text)
				a.log.Debug("lexed source", "name", src.name, "tokens", len(toks))
				if err := printer.Tokens(toks); err != nil {
					return err
				}
				a.record(cmd.Context(), src.text, config.ModeLex, toks, nil, 0)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the source from a file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}
