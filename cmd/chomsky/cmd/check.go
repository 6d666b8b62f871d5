package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"chomsky/internal/analysis"
	"chomsky/internal/diag"
	"chomsky/internal/render"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|dir...]",
		Short: "Analyse source and grammar files and report diagnostics",
		Long: `Walks the given files and directories (default: the current directory)
and analyses every source and grammar file. Exits non-zero when any file
has an error; lint warnings alone do not fail the check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			files, err := collectFiles(args, a.cfg.Files)
			if err != nil {
				return err
			}

			failed := false
			var errs, warnings int
			for _, path := range files {
				r, err := a.checkFile(cmd.ErrOrStderr(), path)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed = true
					continue
				}
				for _, d := range r.Diagnostics {
					if d.Severity == diag.SeverityError {
						errs++
					} else {
						warnings++
					}
				}
				failed = failed || r.HasErrors()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d files: %d errors, %d warnings\n", len(files), errs, warnings)
			if failed {
				return errFailed
			}
			return nil
		},
	}
}

// checkFile analyses one file and prints its diagnostics to w.
func (a *app) checkFile(w io.Writer, path string) (*analysis.Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	r := analysis.File(path, string(b), a.opts)
	if err := render.Diagnostics(w, path, r.Diagnostics, !a.plain); err != nil {
		return nil, err
	}
	return r, nil
}
