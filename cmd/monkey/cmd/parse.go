package cmd

import (
	"github.com/spf13/cobra"

	"github.com/btouchard/monkey/internal/compiler/lexer"
	"github.com/btouchard/monkey/internal/compiler/parser"
	"github.com/btouchard/monkey/internal/config"
	"github.com/btouchard/monkey/internal/render"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "parse [source]",
		Short: "Print the let statements and diagnostics of a source",
		Long: `Parse one source and print its let statements followed by the
diagnostics for every statement that was dropped. The exit status is 1 when
there are diagnostics.`,
		Example: `  monkey parse 'let x = 5; let y = 10;'
  monkey parse -f examples/first.mk --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			sources, err := readSources(cmd, file, args)
			if err != nil {
				return err
			}
			src := sources[0]

			p := parser.New(lexer.New(src.text))
			p.SetFile(src.name)
			prog := p.ParseProgram()
			errs := p.Errors()
			a.log.Debug("parsed source", "name", src.name, "statements", len(prog.Statements), "errors", len(errs))

			printer := render.NewPrinter(cmd.OutOrStdout(), f, a.cfg.REPL.Color)
			if err := printer.Program(prog, errs); err != nil {
				return err
			}
			a.record(cmd.Context(), src.text, config.ModeParse, lexer.Tokenize(src.text), prog, len(errs))

			return p.Err()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the source from a file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}
