// Package cmd is the chomsky command tree.
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"chomsky/internal/analysis"
	"chomsky/internal/config"
	"chomsky/internal/render"
)

var log = commonlog.GetLogger("chomsky.cli")

// errFailed is returned after the diagnostics explaining it were printed.
var errFailed = errors.New("analysis reported errors")

// app holds what the persistent flags resolve to for one invocation.
type app struct {
	cfgFile   string
	verbosity int
	logFile   string
	format    string
	plain     bool

	cfg  *config.Config
	opts analysis.Options
	out  render.Format
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "chomsky",
		Short: "Scanner, grammar classifier and parser for a small C-like language",
		Long: `chomsky scans and parses declarations of a small C-like language and
classifies grammar descriptions in the Chomsky hierarchy.

Files ending in .c are parsed as source, files ending in .grammar are
classified as grammars. Both lists can be changed in chomsky.toml.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: chomsky.toml in this or a parent directory)")
	root.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format: text or yaml (overrides the config)")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "print diagnostics without colors")

	root.AddCommand(
		newTokensCmd(a),
		newClassifyCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newWatchCmd(a),
		newReplCmd(a),
		newInitCmd(a),
		newToolsCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var path *string
	if a.logFile != "" {
		path = &a.logFile
	}
	commonlog.Configure(a.verbosity, path)

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.format != "" {
		cfg.Output.Format = a.format
	}
	f, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	a.cfg, a.opts, a.out = cfg, analysis.OptionsFrom(cfg), f
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfgFile != "" {
		return config.Load(a.cfgFile)
	}
	if path, ok := config.Find("."); ok {
		log.Infof("using %s", path)
		return config.Load(path)
	}
	return config.Default(), nil
}
