package cmd

import (
	"github.com/spf13/cobra"

	"chomsky/internal/analysis"
	"chomsky/internal/render"
)

func newParseCmd(a *app) *cobra.Command {
	var lineSeps, noLint bool
	c := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse declarations and print the resulting tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			opts := a.opts
			if cmd.Flags().Changed("line-separators") {
				opts.ParseLineSeparators = lineSeps
			}
			if noLint {
				opts.Lint = false
			}
			res, ds := analysis.Program(src, opts)
			_ = render.Diagnostics(cmd.ErrOrStderr(), name, ds, !a.plain)
			if res == nil {
				return errFailed
			}
			return render.Program(cmd.OutOrStdout(), res.Program, a.out)
		},
	}
	c.Flags().BoolVar(&lineSeps, "line-separators", false, "let a line break end a statement")
	c.Flags().BoolVar(&noLint, "no-lint", false, "skip the lint checks")
	return c
}
