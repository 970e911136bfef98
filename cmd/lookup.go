package cmd

import (
	"github.com/spf13/cobra"

	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

// lookupCmd represents the lookup command.
var lookupCmd = newLookupCmd()

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <bin|lib> <path>",
		Short: "Report whether a path is visible from outside a root",
		Long: `Answer a single export query. The result is one of "not found",
"private" or "public"; collisions are flagged.

Example:
  modtest lookup lib net.http.Client`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := m.ParseRoot(args[0])
			if err != nil {
				return inputError(err)
			}

			_, err = workflow.Lookup(cmd.Context(), domain.LookupArgs{
				ResolveArgs: resolveArgs(cmd),
				Root:        root,
				Path:        m.ParsePath(args[1]),
			})

			return inputError(err)
		},
	}

	configureResolveFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
