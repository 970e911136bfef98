package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously saved test report",
		Long:  "View the test report saved in the reports directory by a previous run or merge.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.FilePath(viper.GetString(outputFlagName))

			_, err := workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})

			return err
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
