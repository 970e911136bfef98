package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
	m "modtest.dev/pkg/modtest/internal/model"
)

// TestBodyAdapter turns the script attached to a test declaration into an
// executable body.
type TestBodyAdapter interface {
	Body(root m.Root, path m.Path, script string) m.TestBody
}

// maxOutputInReason caps how much script output ends up in a failure reason.
const maxOutputInReason = 2048

// ShellTestRunnerAdapter runs test scripts with an in-process POSIX shell,
// so bodies behave the same on every platform.
type ShellTestRunnerAdapter struct {
	workDir string
}

// NewShellTestRunnerAdapter constructs an adapter that runs scripts in workDir.
// An empty workDir means the current directory.
func NewShellTestRunnerAdapter(workDir string) *ShellTestRunnerAdapter {
	return &ShellTestRunnerAdapter{workDir: workDir}
}

// Body returns a handle that parses and runs script when invoked. An empty
// script is a test with an empty body and always passes. The test's root and
// path are exported to the script as MODTEST_ROOT and MODTEST_PATH.
func (a *ShellTestRunnerAdapter) Body(root m.Root, path m.Path, script string) m.TestBody {
	name := root.String() + ":" + path.String()

	if strings.TrimSpace(script) == "" {
		return func(ctx context.Context) error {
			return ctx.Err()
		}
	}

	return func(ctx context.Context) error {
		prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
		if err != nil {
			return fmt.Errorf("test script syntax error: %w", err)
		}

		env := append(os.Environ(), "MODTEST_ROOT="+root.String(), "MODTEST_PATH="+path.String())

		var output bytes.Buffer

		opts := []interp.RunnerOption{
			interp.Env(expand.ListEnviron(env...)),
			interp.StdIO(nil, &output, &output),
		}

		if a.workDir != "" {
			opts = append(opts, interp.Dir(a.workDir))
		}

		runner, err := interp.New(opts...)
		if err != nil {
			return fmt.Errorf("failed to create interpreter: %w", err)
		}

		if err := runner.Run(ctx, prog); err != nil {
			var exitStatus interp.ExitStatus
			if errors.As(err, &exitStatus) {
				return fmt.Errorf("exit status %d%s", uint8(exitStatus), formatOutput(output.String()))
			}

			return fmt.Errorf("test script failed: %w", err)
		}

		return nil
	}
}

func formatOutput(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return ""
	}

	if len(output) > maxOutputInReason {
		output = output[len(output)-maxOutputInReason:]
	}

	return ": " + output
}
