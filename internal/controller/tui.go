package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	m "modtest.dev/pkg/modtest/internal/model"
)

// Reserved rows around the pager viewport: title, blank, blank, help.
const pagerChromeHeight = 4

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	passStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	panicStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	collideStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	pagerHelpText = "↑/k: up | ↓/j: down | pgup/pgdn | q: quit"
)

// TUI implements UI with styled output and a Bubble Tea pager for long listings.
type TUI struct {
	output io.Writer
	mu     sync.Mutex
	width  int
	height int
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	t := &TUI{output: output}

	if f, ok := output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			t.width = width
			t.height = height
		}
	}

	return t
}

// DisplayExports shows the export table and highlights collisions.
func (t *TUI) DisplayExports(ctx context.Context, view ExportView) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString(renderExportTable(view.Entries))

	if !view.HasLibrary {
		b.WriteString("\n" + dimStyle.Render("No library root declared.") + "\n")
	}

	b.WriteString("\n")

	if len(view.Collisions) == 0 {
		b.WriteString(passStyle.Render("No collisions.") + "\n")
	} else {
		b.WriteString(collideStyle.Render(renderCollisions(view.Collisions)))
	}

	return t.show("Exports", b.String())
}

// DisplayLookup prints the answer to a single export query.
func (t *TUI) DisplayLookup(ctx context.Context, root m.Root, path m.Path, result m.LookupResult, collision bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	style := dimStyle
	if result == m.PublicPath {
		style = passStyle
	}

	line := style.Render(formatLookup(root, path, result, false))
	if collision {
		line += " " + collideStyle.Render("(collision: exported by both roots)")
	}

	t.println(line)

	return nil
}

// DisplayPlan shows the discovered tests.
func (t *TUI) DisplayPlan(ctx context.Context, items []m.TestItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.show("Test plan", renderPlanTable(items))
}

// DisplayRunInfo shows concurrency settings.
func (t *TUI) DisplayRunInfo(ctx context.Context, info RunInfo) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.println(titleStyle.Render(fmt.Sprintf("Running %d test(s) with %d worker(s)", info.Tests, info.Workers)) +
		dimStyle.Render(fmt.Sprintf(" shard %d/%d", info.ShardIndex, info.ShardCount)))
}

// TestStarted prints a faint line per dispatched test.
func (t *TUI) TestStarted(_ context.Context, item m.TestItem, workerID int) {
	t.println(dimStyle.Render(fmt.Sprintf("  [w%d] RUN    %s:%s", workerID, item.Root, item.Path)))
}

// TestCompleted prints the styled terminal state of a test.
func (t *TUI) TestCompleted(_ context.Context, result m.TestResult) {
	line := fmt.Sprintf("%s %s:%s %s", stateLabel(result.State), result.Root, result.Path,
		dimStyle.Render(result.Duration.String()))
	if result.Reason != "" {
		line += "\n         " + dimStyle.Render(firstLine(result.Reason))
	}

	t.println(line)
}

// DisplayReport shows failures and the colored summary.
func (t *TUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	style := passStyle
	if report.Outcome != m.Success {
		style = failStyle
	}

	content := renderReport(report)
	summaryAt := strings.LastIndex(content, "Result: ")

	if summaryAt >= 0 {
		content = content[:summaryAt] + style.Render(strings.TrimSpace(content[summaryAt:])) + "\n"
	}

	return t.show("Report", content)
}

func stateLabel(state m.TestState) string {
	label := fmt.Sprintf("%-8s", strings.ToUpper(state.String()))

	switch state {
	case m.Passed:
		return passStyle.Render(label)
	case m.Failed:
		return failStyle.Render(label)
	case m.Panicked:
		return panicStyle.Render(label)
	default:
		return dimStyle.Render(label)
	}
}

// show prints content directly when it fits on screen and pages it otherwise.
func (t *TUI) show(title, content string) error {
	if !t.needsPagination(content) {
		t.println(titleStyle.Render(title) + "\n\n" + content)
		return nil
	}

	program := tea.NewProgram(newPagerModel(title, content, t.width, t.height), tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func (t *TUI) needsPagination(content string) bool {
	if t.height == 0 {
		return false
	}

	return strings.Count(content, "\n")+pagerChromeHeight > t.height
}

func (t *TUI) println(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, _ = fmt.Fprintln(t.output, line)
}

// pagerModel is the Bubble Tea model that scrolls a long listing.
type pagerModel struct {
	title    string
	viewport viewport.Model
}

func newPagerModel(title, content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-pagerChromeHeight, 1))
	vp.SetContent(content)

	return pagerModel{title: title, viewport: vp}
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	case tea.WindowSizeMsg:
		p.viewport.Width = msg.Width
		p.viewport.Height = max(msg.Height-pagerChromeHeight, 1)
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	footer := fmt.Sprintf("%3.f%% | %s", p.viewport.ScrollPercent()*100, pagerHelpText)

	return titleStyle.Render(p.title) + "\n\n" + p.viewport.View() + "\n\n" + dimStyle.Render(footer)
}
