package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

var listShardFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := workflow.List(cmd.Context(), listArgs(listShardFlag))
			return inputError(err)
		},
	}

	cmd.Flags().StringVarP(&listShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listArgs(shard string) domain.ListArgs {
	shardIndex, totalShards := parseShardFlag(shard)

	return domain.ListArgs{
		Facts:           m.FilePath(viper.GetString(factsFlagName)),
		Exclude:         viper.GetStringSlice(excludeConfigKey),
		ShardIndex:      shardIndex,
		TotalShardCount: totalShards,
	}
}
