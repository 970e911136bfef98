package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sharded reports into a single report",
		Long: `Merge the reports from shard_* subdirectories into one report saved at the
top of the reports directory. The exit status follows the merged outcome.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.FilePath(viper.GetString(outputFlagName))

			report, err := workflow.Merge(cmd.Context(), domain.MergeArgs{Reports: reportsPath})
			if err != nil {
				return err
			}

			return reportExit(report)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
