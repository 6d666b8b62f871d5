package cmd

import (
	"github.com/spf13/cobra"

	"chomsky/internal/analysis"
	"chomsky/internal/render"
)

func newTokensCmd(a *app) *cobra.Command {
	var lineSeps, comments bool
	c := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a file",
		Long: `Scans a file and prints one token per line with its position.

Examples:
  chomsky tokens main.c
  chomsky tokens --comments --line-separators main.c
  echo 'int a = 5;' | chomsky tokens -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			opts := a.opts
			if cmd.Flags().Changed("line-separators") {
				opts.ScanLineSeparators = lineSeps
			}
			if cmd.Flags().Changed("comments") {
				opts.KeepComments = comments
			}
			toks, ds := analysis.Tokens(src, opts)
			if len(ds) > 0 {
				_ = render.Diagnostics(cmd.ErrOrStderr(), name, ds, !a.plain)
				return errFailed
			}
			return render.Tokens(cmd.OutOrStdout(), toks, a.out)
		},
	}
	c.Flags().BoolVar(&lineSeps, "line-separators", false, "emit line separator tokens")
	c.Flags().BoolVar(&comments, "comments", false, "keep comment tokens")
	return c
}
