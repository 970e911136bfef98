package cmd

import (
	"fmt"

	m "modtest.dev/pkg/modtest/internal/model"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitCancelled    = 3
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// inputError marks a failure to load or build the module graph.
func inputError(err error) error {
	if err == nil {
		return nil
	}

	return &ExitError{Code: ExitInvalidInput, Err: err}
}

// reportExit maps a finished report to the process exit status. The report
// has already been displayed, so the error carries no message of its own.
func reportExit(report m.Report) error {
	switch report.Outcome {
	case m.Failure:
		return &ExitError{Code: ExitFailure}
	case m.Incomplete:
		return &ExitError{Code: ExitCancelled}
	default:
		return nil
	}
}
