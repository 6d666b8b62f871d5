package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chomsky/internal/tools"
)

func newToolsCmd() *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage the chomsky binaries",
	}

	var binDir string
	install := &cobra.Command{
		Use:   "install",
		Short: "Build chomsky and chomsky-lsp from the module root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := tools.Install(tools.InstallOptions{BinDir: binDir, Output: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "installed: %s\n", p)
			}
			return nil
		},
	}
	install.Flags().StringVar(&binDir, "bin", "bin", "output directory for the binaries")
	toolsCmd.AddCommand(install)
	return toolsCmd
}
