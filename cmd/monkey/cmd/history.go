package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/btouchard/monkey/internal/render"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := a.requireStore()
			if err != nil {
				return err
			}
			sessions, err := s.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return render.NewPrinter(cmd.OutOrStdout(), f, a.cfg.REPL.Color).Sessions(sessions)
		},
	}
	cmd.PersistentFlags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of sessions (0 for all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print one session with its tokens",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := render.ParseFormat(format)
				if err != nil {
					return err
				}
				s, err := a.requireStore()
				if err != nil {
					return err
				}
				session, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render.NewPrinter(cmd.OutOrStdout(), f, a.cfg.REPL.Color).Session(session)
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Delete one session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.requireStore()
				if err != nil {
					return err
				}
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
