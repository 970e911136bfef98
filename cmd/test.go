package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

var testWorkersFlag int
var testTimeoutFlag string
var testShardFlag string

// testCmd represents the test command.
var testCmd = newTestCmd()

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the discovered tests",
		Long:  testLongDescription,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := workflow.Test(ctx, domain.TestArgs{
				ListArgs: listArgs(testShardFlag),
				Reports:  m.FilePath(viper.GetString(outputFlagName)),
				Workers:  viper.GetInt(workersConfigKey),
				Timeout:  configTimeout(),
			})
			if err != nil {
				return inputError(err)
			}

			return reportExit(report)
		},
	}

	configureTestFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func configureTestFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&testWorkersFlag, workersFlagName, "p", viper.GetInt(workersConfigKey), "number of parallel test workers")
	bindFlagToConfig(cmd.Flags().Lookup(workersFlagName), workersConfigKey)

	cmd.Flags().StringVarP(&testTimeoutFlag, timeoutFlagName, "t", defaultTestTimeout.String(), "per-test timeout (e.g. 5s, 1m)")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutConfigKey)

	cmd.Flags().StringVarP(&testShardFlag, shardFlagName, "s", "", "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
}

func parseShardFlag(shard string) (int, int) {
	if shard == "" {
		return 0, 1
	}

	var index, total int

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total <= 0 || index < 0 || index >= total {
		return 0, 1
	}

	return index, total
}
