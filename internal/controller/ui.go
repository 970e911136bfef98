// Package controller provides output adapters for displaying resolution and test results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "modtest.dev/pkg/modtest/internal/model"
)

// ExportView is the rendered form of an export table.
type ExportView struct {
	Entries    []m.ExportEntry
	Collisions []m.Collision
	HasLibrary bool
}

// RunInfo describes how a run is scheduled.
type RunInfo struct {
	Tests      int
	Workers    int
	ShardIndex int
	ShardCount int
}

// UI defines how results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
// TestStarted and TestCompleted may be called concurrently from test workers.
type UI interface {
	DisplayExports(ctx context.Context, view ExportView) error
	DisplayLookup(ctx context.Context, root m.Root, path m.Path, result m.LookupResult, collision bool) error
	DisplayPlan(ctx context.Context, items []m.TestItem) error
	DisplayRunInfo(ctx context.Context, info RunInfo)
	TestStarted(ctx context.Context, item m.TestItem, workerID int)
	TestCompleted(ctx context.Context, result m.TestResult)
	DisplayReport(ctx context.Context, report m.Report) error
}

// NewUI returns the interactive UI when output is a terminal and the plain
// one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
