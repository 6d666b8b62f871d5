package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"chomsky/internal/repl"
)

const historyFile = ".chomsky_history"

func newReplCmd(a *app) *cobra.Command {
	var mode string
	c := &cobra.Command{
		Use:   "repl",
		Short: "Analyse input interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := repl.ParseMode(mode)
			if !ok {
				return errors.Errorf("unknown mode %q (parse, tokens or grammar)", mode)
			}
			cfg := repl.Config{
				Options: a.opts,
				Format:  a.out,
				Mode:    m,
				Styled:  !a.plain,
			}
			if home, err := os.UserHomeDir(); err == nil {
				cfg.HistoryPath = filepath.Join(home, historyFile)
			}
			return repl.Start(cmd.OutOrStdout(), cfg)
		},
	}
	c.Flags().StringVarP(&mode, "mode", "m", "parse", "initial mode: parse, tokens or grammar")
	return c
}
