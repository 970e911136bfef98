// Package domain implements module-graph resolution and the test harness.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"modtest.dev/pkg/modtest/internal/adapter"
	"modtest.dev/pkg/modtest/internal/controller"
	m "modtest.dev/pkg/modtest/internal/model"
)

// ErrNoShardReports is returned by Merge when no shard directory holds a report.
var ErrNoShardReports = errors.New("no shard reports found")

// ResolveArgs contains the arguments for resolving exports.
type ResolveArgs struct {
	Facts              m.FilePath
	IncludeTestModules bool
}

// LookupArgs contains the arguments for a single export query.
type LookupArgs struct {
	ResolveArgs
	Root m.Root
	Path m.Path
}

// ListArgs contains the arguments for building a test plan.
type ListArgs struct {
	Facts           m.FilePath
	Exclude         []string
	ShardIndex      int
	TotalShardCount int
}

// TestArgs contains the arguments for running the test plan.
type TestArgs struct {
	ListArgs
	Reports m.FilePath
	Workers int
	Timeout time.Duration
}

// ViewArgs contains the arguments for viewing a saved report.
type ViewArgs struct {
	Reports m.FilePath
}

// MergeArgs contains the arguments for merging shard reports.
type MergeArgs struct {
	Reports m.FilePath
}

// Workflow composes loading, resolution, discovery and execution for the CLI.
type Workflow interface {
	Resolve(ctx context.Context, args ResolveArgs) (*ExportTable, error)
	Lookup(ctx context.Context, args LookupArgs) (m.LookupResult, error)
	List(ctx context.Context, args ListArgs) ([]m.TestItem, error)
	Test(ctx context.Context, args TestArgs) (m.Report, error)
	View(ctx context.Context, args ViewArgs) (m.Report, error)
	Merge(ctx context.Context, args MergeArgs) (m.Report, error)
}

type workflow struct {
	adapter.FactLoaderAdapter
	adapter.ReportStore
	controller.UI
	Builder
	Discoverer
	Runner
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	factLoader adapter.FactLoaderAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	builder Builder,
	discoverer Discoverer,
	runner Runner,
) Workflow {
	return &workflow{
		FactLoaderAdapter: factLoader,
		ReportStore:       reportStore,
		UI:                ui,
		Builder:           builder,
		Discoverer:        discoverer,
		Runner:            runner,
	}
}

func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) (*ExportTable, error) {
	table, err := w.resolve(ctx, args)
	if err != nil {
		return nil, err
	}

	var entries []m.ExportEntry
	for _, root := range m.Roots {
		entries = append(entries, table.Entries(root)...)
	}

	err = w.DisplayExports(ctx, controller.ExportView{
		Entries:    entries,
		Collisions: table.Collisions(),
		HasLibrary: table.HasLibrary(),
	})
	if err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}

	return table, nil
}

func (w *workflow) Lookup(ctx context.Context, args LookupArgs) (m.LookupResult, error) {
	table, err := w.resolve(ctx, args.ResolveArgs)
	if err != nil {
		return m.NotFound, err
	}

	result := table.Lookup(args.Root, args.Path)

	if err := w.DisplayLookup(ctx, args.Root, args.Path, result, table.IsCollision(args.Path)); err != nil {
		return result, fmt.Errorf("display: %w", err)
	}

	return result, nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) ([]m.TestItem, error) {
	items, err := w.plan(ctx, args)
	if err != nil {
		return nil, err
	}

	if err := w.DisplayPlan(ctx, items); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}

	return items, nil
}

// Test runs the plan and always returns the report it produced; a
// cancelled run yields an incomplete report rather than an error.
func (w *workflow) Test(ctx context.Context, args TestArgs) (m.Report, error) {
	items, err := w.plan(ctx, args.ListArgs)
	if err != nil {
		return m.Report{}, err
	}

	workers := args.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	w.DisplayRunInfo(ctx, controller.RunInfo{
		Tests:      len(items),
		Workers:    workers,
		ShardIndex: args.ShardIndex,
		ShardCount: max(args.TotalShardCount, 1),
	})

	report := w.Run(ctx, items, RunConfig{
		Workers:  workers,
		Timeout:  args.Timeout,
		Listener: w.UI,
	})

	// The report is still shown and saved when the run was cancelled.
	detached := context.WithoutCancel(ctx)

	if err := w.DisplayReport(detached, report); err != nil {
		slog.Error("Failed to display report", "error", err)
		return report, fmt.Errorf("display: %w", err)
	}

	if args.Reports != "" {
		dir := args.Reports
		if args.TotalShardCount > 1 {
			dir = adapter.ShardDir(args.Reports, args.ShardIndex)
		}

		if err := w.SaveReport(detached, dir, report); err != nil {
			return report, fmt.Errorf("save report: %w", err)
		}
	}

	return report, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) (m.Report, error) {
	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		return m.Report{}, fmt.Errorf("load report: %w", err)
	}

	if err := w.DisplayReport(ctx, report); err != nil {
		return report, fmt.Errorf("display: %w", err)
	}

	return report, nil
}

func (w *workflow) Merge(ctx context.Context, args MergeArgs) (m.Report, error) {
	dirs, err := w.ShardDirs(ctx, args.Reports)
	if err != nil {
		return m.Report{}, err
	}

	reports := make([]m.Report, 0, len(dirs))

	for _, dir := range dirs {
		report, err := w.LoadReport(ctx, dir)
		if err != nil {
			slog.Error("Failed to load shard report", "dir", dir, "error", err)
			return m.Report{}, fmt.Errorf("load shard report: %w", err)
		}

		reports = append(reports, report)
	}

	if len(reports) == 0 {
		return m.Report{}, fmt.Errorf("%w in %s", ErrNoShardReports, args.Reports)
	}

	merged := MergeReports(reports)

	if err := w.SaveReport(ctx, args.Reports, merged); err != nil {
		return merged, fmt.Errorf("save report: %w", err)
	}

	if err := w.DisplayReport(ctx, merged); err != nil {
		return merged, fmt.Errorf("display: %w", err)
	}

	return merged, nil
}

func (w *workflow) graphs(ctx context.Context, facts m.FilePath) (m.Graphs, error) {
	loaded, err := w.Load(ctx, facts)
	if err != nil {
		return m.Graphs{}, fmt.Errorf("load facts: %w", err)
	}

	graphs, err := w.Build(ctx, loaded)
	if err != nil {
		return m.Graphs{}, fmt.Errorf("build module graph: %w", err)
	}

	return graphs, nil
}

func (w *workflow) resolve(ctx context.Context, args ResolveArgs) (*ExportTable, error) {
	graphs, err := w.graphs(ctx, args.Facts)
	if err != nil {
		return nil, err
	}

	table, err := NewResolver(ResolveOptions{IncludeTestModules: args.IncludeTestModules}).Resolve(ctx, graphs)
	if err != nil {
		return nil, fmt.Errorf("resolve exports: %w", err)
	}

	slog.Debug("Resolved exports", "binary", len(table.Visible(m.RootBinary)),
		"library", len(table.Visible(m.RootLibrary)), "collisions", len(table.Collisions()))

	return table, nil
}

func (w *workflow) plan(ctx context.Context, args ListArgs) ([]m.TestItem, error) {
	graphs, err := w.graphs(ctx, args.Facts)
	if err != nil {
		return nil, err
	}

	items, err := w.Discover(ctx, graphs)
	if err != nil {
		return nil, fmt.Errorf("discover tests: %w", err)
	}

	items, err = FilterTests(items, args.Exclude)
	if err != nil {
		return nil, err
	}

	return ShardTests(items, args.ShardIndex, args.TotalShardCount), nil
}
