package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"chomsky/internal/config"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	var source, grammarFile string
	c := &cobra.Command{
		Use:   "init",
		Short: "Create chomsky.toml and starter files in the current directory",
		Args:  cobra.NoArgs,
		// An existing config may be the broken file being replaced.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if a.logFile != "" {
				path = &a.logFile
			}
			commonlog.Configure(a.verbosity, path)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(source) == "" || strings.TrimSpace(grammarFile) == "" {
				return errors.New("file names cannot be empty")
			}
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}

			manifestPath := filepath.Join(cwd, config.FileName)
			exists, err := pathExists(manifestPath)
			if err != nil {
				return err
			}
			if exists && !force {
				return errors.Errorf("%s already exists (use --force to overwrite)", config.FileName)
			}
			var buf bytes.Buffer
			if err := config.Default().Encode(&buf); err != nil {
				return err
			}
			if err := os.WriteFile(manifestPath, buf.Bytes(), 0o644); err != nil {
				return errors.Wrapf(err, "write %s", manifestPath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", config.FileName)

			starters := []struct {
				name, text string
			}{
				{source, starterProgram},
				{grammarFile, starterGrammar},
			}
			for _, s := range starters {
				path := filepath.Join(cwd, s.name)
				if err := ensureDir(path); err != nil {
					return errors.Wrapf(err, "create directory for %s", s.name)
				}
				exists, err := pathExists(path)
				if err != nil {
					return err
				}
				if exists && !force {
					continue
				}
				if err := os.WriteFile(path, []byte(s.text), 0o644); err != nil {
					return errors.Wrapf(err, "write %s", path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", s.name)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	c.Flags().StringVar(&source, "source", "main.c", "starter source file")
	c.Flags().StringVar(&grammarFile, "grammar", "example.grammar", "starter grammar file")
	return c
}

const starterProgram = `// Declarations only take literal initializers.
int answer = 42;

void main(){
    boolean ready = true;
    float ratio = 0.5f;
}
`

const starterGrammar = `(
    {S, A},
    {a, b},
    {
        S > a A,
        A > b A,
        A >
    },
    S
)
`
