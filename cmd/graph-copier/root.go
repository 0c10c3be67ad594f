package main

import (
	"graph-copier/internal/config"
	"graph-copier/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all commands once the root command has set it up.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "graph-copier",
		Short: "Inspect mergeable types and merge request documents",
		Long: `graph-copier works with the merge package: it lists the attribute paths of
request documents, reports the attributes the merge engine can reach in Go
packages, and prints the merge profile built from config files and
GRAPHCOPIER_* environment variables.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides the config)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console or json (overrides the config)")

	root.AddCommand(
		newPathsCmd(a),
		newInspectCmd(a),
		newProfileCmd(a),
	)

	return root
}

// setup loads the configuration and builds the logger; flags win over the config.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".", a.configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}

	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log
	a.log.Debug("configuration loaded", zap.String("file", a.configFile))

	return nil
}
