package main

import (
	"graph-copier/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the effective configuration",
		Long: `profile prints the configuration graph-copier runs with: defaults, overridden by
the --config file, overridden by GRAPHCOPIER_* environment variables (for
example GRAPHCOPIER_MERGE_NULLS_ONLY=true). The merge profile is validated first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.cfg.Merge.Options(); err != nil {
				return err
			}

			return writeProfile(cmd, a.cfg)
		},
	}
}

func writeProfile(cmd *cobra.Command, cfg *config.Config) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return err
	}

	return enc.Close()
}
