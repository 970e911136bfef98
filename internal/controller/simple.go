package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "modtest.dev/pkg/modtest/internal/model"
)

// SimpleUI implements UI using the cobra command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayExports prints one table per root followed by the collisions.
func (s *SimpleUI) DisplayExports(ctx context.Context, view ExportView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderExportTable(view.Entries))

	if !view.HasLibrary {
		s.printf("\nNo library root declared.\n")
	}

	s.printf("\n%s", renderCollisions(view.Collisions))

	return nil
}

// DisplayLookup prints the answer to a single export query.
func (s *SimpleUI) DisplayLookup(ctx context.Context, root m.Root, path m.Path, result m.LookupResult, collision bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", formatLookup(root, path, result, collision))

	return nil
}

// DisplayPlan prints the discovered tests in execution-plan order.
func (s *SimpleUI) DisplayPlan(ctx context.Context, items []m.TestItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderPlanTable(items))

	return nil
}

// DisplayRunInfo shows concurrency settings.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d test(s) with %d worker(s) (Shard %d/%d)\n", info.Tests, info.Workers, info.ShardIndex, info.ShardCount)
}

// TestStarted logs nothing: the plain output only reports completions.
func (s *SimpleUI) TestStarted(_ context.Context, _ m.TestItem, _ int) {}

// TestCompleted prints one line per finished test.
func (s *SimpleUI) TestCompleted(_ context.Context, result m.TestResult) {
	line := fmt.Sprintf("%-8s %s:%s", strings.ToUpper(result.State.String()), result.Root, result.Path)
	if result.Reason != "" {
		line += " (" + firstLine(result.Reason) + ")"
	}

	s.printf("%s\n", line)
}

// DisplayReport prints the failure details and the summary line.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReport(report))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func renderExportTable(entries []m.ExportEntry) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Root", "Path", "Kind", "Visibility"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	exported := 0

	for _, entry := range entries {
		visibility := m.PrivatePath.String()
		if entry.Visible {
			visibility = m.PublicPath.String()
			exported++
		}

		table.Append([]string{entry.Root.String(), entry.Path.String(), entry.Kind.String(), visibility})
	}

	table.SetFooter([]string{"", fmt.Sprintf("Total Paths %d", len(entries)), "", fmt.Sprintf("Exported %d", exported)})
	table.Render()

	return tableBuffer.String()
}

func renderCollisions(collisions []m.Collision) string {
	if len(collisions) == 0 {
		return "No collisions.\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Collisions (%d):\n", len(collisions))

	for _, collision := range collisions {
		roots := make([]string, 0, len(collision.Roots))
		for _, root := range collision.Roots {
			roots = append(roots, root.String())
		}

		fmt.Fprintf(&b, "  %s exported by %s\n", collision.Path, strings.Join(roots, " and "))
	}

	return b.String()
}

func formatLookup(root m.Root, path m.Path, result m.LookupResult, collision bool) string {
	line := fmt.Sprintf("%s:%s is %s", root, path, result)
	if collision {
		line += " (collision: exported by both roots)"
	}

	return line
}

func renderPlanTable(items []m.TestItem) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Root", "Test", "Style"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for i, item := range items {
		table.Append([]string{fmt.Sprintf("%d", i+1), item.Root.String(), item.Path.String(), item.Style.String()})
	}

	table.SetFooter([]string{"", "", fmt.Sprintf("Total Tests %d", len(items)), ""})
	table.Render()

	return tableBuffer.String()
}

func renderReport(report m.Report) string {
	var b strings.Builder

	failures := report.Failures()
	if len(failures) > 0 {
		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Test", "Style", "Status", "Reason"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetAutoWrapText(false)

		for _, failure := range failures {
			table.Append([]string{failure.Root + ":" + failure.Path, failure.Style, failure.State.String(), firstLine(failure.Reason)})
		}

		table.Render()
		b.WriteString(tableBuffer.String())
		b.WriteString("\n")
	}

	b.WriteString(formatSummary(report))

	return b.String()
}

func formatSummary(report m.Report) string {
	c := report.Counts

	summary := fmt.Sprintf("Total: %d | Passed: %d | Failed: %d | Panicked: %d | Timed out: %d",
		c.Total, c.Passed, c.Failed, c.Panicked, c.TimedOut)
	if c.NotRun > 0 {
		summary += fmt.Sprintf(" | Not run: %d", c.NotRun)
	}

	return summary + "\nResult: " + strings.ToUpper(string(report.Outcome)) + "\n"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}

	return s
}
