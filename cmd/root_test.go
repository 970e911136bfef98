package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modtest.dev/pkg/modtest/internal/domain"
	m "modtest.dev/pkg/modtest/internal/model"
)

// newTestRootCmd builds a fresh root with its persistent flags bound, so
// flag values from a previous test never leak through viper.
func newTestRootCmd(t *testing.T, subcommands ...*cobra.Command) *cobra.Command {
	t.Helper()

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.PersistentPreRun = nil
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.AddCommand(subcommands...)

	return cmd
}

func useWorkflow(t *testing.T, w domain.Workflow) {
	t.Helper()

	original := workflow
	workflow = w

	t.Cleanup(func() { workflow = original })
}

func TestParseShardFlag(t *testing.T) {
	tests := []struct {
		name      string
		shard     string
		wantIndex int
		wantTotal int
	}{
		{"empty string", "", 0, 1},
		{"valid 0/3", "0/3", 0, 3},
		{"valid 1/3", "1/3", 1, 3},
		{"valid 2/3", "2/3", 2, 3},
		{"invalid format", "invalid", 0, 1},
		{"zero total", "0/0", 0, 1},
		{"negative total", "0/-1", 0, 1},
		{"negative index", "-1/3", 0, 1},
		{"index >= total", "3/3", 0, 1},
		{"index > total", "5/3", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIndex, gotTotal := parseShardFlag(tt.shard)
			assert.Equal(t, tt.wantIndex, gotIndex, "index")
			assert.Equal(t, tt.wantTotal, gotTotal, "total")
		})
	}
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "modtest", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newTestRootCmd(t)
	output := &bytes.Buffer{}
	cmd.SetOut(output)

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "top-level \"facts\" list")
	assert.Contains(t, output.String(), "--facts")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, factLoader)
	assert.NotNil(t, reportStore)
	assert.NotNil(t, bodyAdapter)
	assert.NotNil(t, builder)
	assert.NotNil(t, discoverer)
	assert.NotNil(t, runner)
	assert.NotNil(t, workflow)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"resolve", "lookup", "list", "test", "view", "merge", "init", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("boom")

	err := &ExitError{Code: ExitInvalidInput, Err: cause}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "exit status 3", (&ExitError{Code: ExitCancelled}).Error())
}

func TestReportExit(t *testing.T) {
	tests := []struct {
		name    string
		outcome m.Outcome
		want    int
	}{
		{"success", m.Success, ExitSuccess},
		{"failure", m.Failure, ExitFailure},
		{"incomplete", m.Incomplete, ExitCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reportExit(m.Report{Outcome: tt.outcome})
			if tt.want == ExitSuccess {
				assert.NoError(t, err)
				return
			}

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tt.want, exitErr.Code)
		})
	}
}

func TestInputError(t *testing.T) {
	assert.NoError(t, inputError(nil))

	var exitErr *ExitError
	require.ErrorAs(t, inputError(&m.MalformedPathError{Path: "a..b", Reason: "empty segment"}), &exitErr)
	assert.Equal(t, ExitInvalidInput, exitErr.Code)

	var malformed *m.MalformedPathError
	assert.ErrorAs(t, exitErr, &malformed)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(_ *cobra.Command, _ []string) error {
				fmt.Println("success")
				return nil
			},
		}
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd

		Execute()

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS=1")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "success")
}

func TestExecute_ProcessLevel_ExitCodes(t *testing.T) {
	if code := os.Getenv("TEST_EXECUTE_SUBPROCESS_CODE"); code != "" {
		mockCmd := &cobra.Command{
			Use:           "test",
			SilenceErrors: true,
			RunE: func(_ *cobra.Command, _ []string) error {
				switch code {
				case "plain":
					return errors.New("command failed")
				case "failure":
					return reportExit(m.Report{Outcome: m.Failure})
				default:
					return reportExit(m.Report{Outcome: m.Incomplete})
				}
			},
		}
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd

		Execute()

		return
	}

	tests := []struct {
		mode     string
		wantCode int
	}{
		{"plain", ExitInvalidInput},
		{"failure", ExitFailure},
		{"incomplete", ExitCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_ExitCodes")
			cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_CODE="+tt.mode)
			output, err := cmd.CombinedOutput()

			var exitErr *exec.ExitError
			require.ErrorAs(t, err, &exitErr, "output: %s", output)
			assert.Equal(t, tt.wantCode, exitErr.ExitCode())

			if tt.mode == "plain" {
				assert.Contains(t, string(output), "command failed")
			}
		})
	}
}
