package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"chomsky/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Re-check source and grammar files whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, cmd, args, nil)
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, dirs []string, ready chan<- struct{}) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	onChange := func(path string) {
		r, err := a.checkFile(errOut, path)
		switch {
		case err != nil:
			fmt.Fprintln(errOut, err)
		case r.HasErrors():
			fmt.Fprintf(out, "%s: failed\n", path)
		default:
			fmt.Fprintf(out, "%s: ok (%s)\n", path, r.Kind)
		}
	}
	fmt.Fprintf(out, "watching %v (Ctrl+C to stop)\n", dirs)
	return watch.Watch(ctx, dirs, a.cfg.Files, onChange, ready)
}
