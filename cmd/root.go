// Package cmd provides the root command and CLI setup for modtest.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"modtest.dev/pkg/modtest/internal/adapter"
	"modtest.dev/pkg/modtest/internal/controller"
	"modtest.dev/pkg/modtest/internal/domain"
)

var factLoader adapter.FactLoaderAdapter
var reportStore adapter.ReportStore
var bodyAdapter adapter.TestBodyAdapter
var builder domain.Builder
var discoverer domain.Discoverer
var runner domain.Runner
var workflow domain.Workflow
var ui controller.UI

// factsFlag is a root-level flag naming the fact file to load.
var factsFlag string

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters tests for applicable commands.
var excludePatterns []string

// verboseFlag switches logging to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	factLoader = adapter.NewLocalFactLoaderAdapter()
	reportStore = adapter.NewReportStore()
	bodyAdapter = adapter.NewShellTestRunnerAdapter("")
	builder = domain.NewBuilder()
	discoverer = domain.NewDiscoverer(bodyAdapter)
	runner = domain.NewRunner()
	workflow = domain.NewWorkflow(
		factLoader,
		reportStore,
		ui,
		builder,
		discoverer,
		runner,
	)
}

const factsHelp = `Facts are read from a YAML, JSON or TOML file with a top-level "facts" list:

  facts:
    - {path: net.http, visibility: pub, root: bin, kind: mod}
    - {path: net.http.tests, root: bin, kind: mod, is_test: true}
    - {path: net.http.tests.parses, root: bin, kind: item, test_style: grouped, run: "test -n ok"}`

const rootLongDescription = `Modtest resolves which paths a crate's binary and library roots export,
reports the paths both roots export (collisions), and discovers and runs
the tests declared in the module tree, each one isolated from the others.

` + factsHelp

const testLongDescription = `Discover every test in the module tree and run them on a bounded worker
pool. A test that fails, panics or times out never affects another test.

Exit status: 0 all passed, 1 failures, 2 invalid facts, 3 run cancelled.`

const listLongDescription = `List the discovered tests in execution-plan order.

` + factsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "modtest",
		Short:         "Module visibility resolver and test harness",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&factsFlag, factsFlagName, "f", viper.GetString(factsFlagName), "fact file describing the module tree")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(factsFlagName), factsFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for test reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude tests matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			rootCmd.PrintErrln("Error:", exitErr.Err)
		}

		os.Exit(exitErr.Code)
	}

	rootCmd.PrintErrln("Error:", err)
	os.Exit(ExitInvalidInput)
}
