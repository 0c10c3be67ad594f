package main

import (
	"fmt"
	"slices"

	"graph-copier/internal/mapping"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPathsCmd(a *app) *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "paths <document>",
		Short: "List the attribute paths a merge request document names",
		Long: `paths reads a YAML or JSON request document and prints one dotted path per
leaf parameter. Lists are followed through their first element, so a list of
objects contributes the paths of that object.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := mapping.DocumentPaths(args[0])
			if err != nil {
				return err
			}

			if sorted {
				slices.Sort(paths)
			}

			a.log.Debug("document paths", zap.String("document", args[0]), zap.Int("count", len(paths)))

			// the paths must parse as merge paths
			if _, err := mapping.ParsePaths(paths); err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&sorted, "sort", false, "sort the full paths lexically instead of attribute by attribute")

	return cmd
}
