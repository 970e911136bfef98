package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

var includeTestModulesFlag bool

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the export table of both roots and their collisions",
		Long: `Build the module graph from the fact file and list every path with its
visibility from outside each root. Paths exported by both the binary and
the library root are reported as collisions.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := workflow.Resolve(cmd.Context(), resolveArgs(cmd))
			return inputError(err)
		},
	}

	configureResolveFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func configureResolveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&includeTestModulesFlag, includeTestModulesFlagName, false, "treat test-only modules as ordinary modules when exporting")
}

// resolveArgs is shared by resolve and lookup, so the flag is read from the
// running command instead of being bound to a single viper key.
func resolveArgs(cmd *cobra.Command) domain.ResolveArgs {
	includeTestModules := viper.GetBool(includeTestModulesKey)
	if flag := cmd.Flags().Lookup(includeTestModulesFlagName); flag != nil && flag.Changed {
		includeTestModules, _ = cmd.Flags().GetBool(includeTestModulesFlagName)
	}

	return domain.ResolveArgs{
		Facts:              m.FilePath(viper.GetString(factsFlagName)),
		IncludeTestModules: includeTestModules,
	}
}
