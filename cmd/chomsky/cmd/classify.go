package cmd

import (
	"github.com/spf13/cobra"

	"chomsky/internal/analysis"
	"chomsky/internal/render"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file|->",
		Short: "Classify a grammar description in the Chomsky hierarchy",
		Long: `Reads a grammar description of the form

  ( {NT1, NT2}, {T1, T2}, { NT1 > T1 NT2, NT2 > T2, NT2 > }, NT1 )

and prints whether it is unrestricted, context-sensitive, context-free or
regular.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			res, ds := analysis.Grammar(src)
			if len(ds) > 0 {
				_ = render.Diagnostics(cmd.ErrOrStderr(), name, ds, !a.plain)
				return errFailed
			}
			return render.Grammar(cmd.OutOrStdout(), res, a.out)
		},
	}
}
