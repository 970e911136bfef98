package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	m "modtest.dev/pkg/modtest/internal/model"
)

// DefaultTestTimeout bounds a single test body when no timeout is configured.
const DefaultTestTimeout = 5 * time.Second

// RunListener is notified as items start and reach a terminal state.
// Calls arrive from worker goroutines.
type RunListener interface {
	TestStarted(ctx context.Context, item m.TestItem, workerID int)
	TestCompleted(ctx context.Context, result m.TestResult)
}

// RunConfig holds the per-run scheduling options.
type RunConfig struct {
	// Workers bounds concurrent items; zero means runtime.NumCPU().
	Workers int
	// Timeout bounds each item; zero means DefaultTestTimeout.
	Timeout time.Duration
	// Listener is optional.
	Listener RunListener
}

// Runner executes a test plan with per-item isolation.
type Runner interface {
	Run(ctx context.Context, items []m.TestItem, cfg RunConfig) m.Report
}

type runner struct{}

// NewRunner constructs a Runner.
func NewRunner() Runner {
	return &runner{}
}

type attempt struct {
	state  m.TestState
	reason string
}

// Run drains items on a bounded worker pool. Cancelling ctx stops dispatch;
// items already running keep going until they finish or time out. The
// report lists results in plan order whatever the completion order.
func (r *runner) Run(ctx context.Context, items []m.TestItem, cfg RunConfig) m.Report {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTestTimeout
	}

	listener := cfg.Listener
	if listener == nil {
		listener = noopListener{}
	}

	results := make([]m.TestResult, len(items))
	for i, item := range items {
		results[i] = pendingResult(item)
	}

	workerIDs := make(chan int, workers)
	for id := range workers {
		workerIDs <- id
	}

	slog.Debug("Starting test run", "tests", len(items), "workers", workers, "timeout", timeout)

	var group errgroup.Group
	group.SetLimit(workers)

	for i, item := range items {
		if ctx.Err() != nil {
			slog.Debug("Run cancelled, stopping dispatch", "dispatched", i, "tests", len(items))
			break
		}

		group.Go(func() error {
			workerID := <-workerIDs
			defer func() { workerIDs <- workerID }()

			if ctx.Err() != nil {
				return nil
			}

			results[i].State = m.Running
			listener.TestStarted(ctx, item, workerID)

			results[i] = r.runItem(ctx, item, timeout)
			listener.TestCompleted(ctx, results[i])

			return nil
		})
	}

	// Workers never return errors: every outcome is captured in results.
	_ = group.Wait()

	// Cancellation after the last dispatch still leaves the run incomplete.
	report := summarizeResults(results, ctx.Err() != nil)
	slog.Debug("Finished test run", "outcome", report.Outcome, "passed", report.Counts.Passed,
		"failed", report.Counts.Failed, "panicked", report.Counts.Panicked, "notRun", report.Counts.NotRun)

	return report
}

// runItem executes one body on its own goroutine so that a panic or a
// hung body cannot take the worker down with it.
func (r *runner) runItem(ctx context.Context, item m.TestItem, timeout time.Duration) m.TestResult {
	result := pendingResult(item)

	itemCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	start := time.Now()
	done := make(chan attempt, 1)

	go func() {
		returned := false

		defer func() {
			if rec := recover(); rec != nil {
				done <- attempt{state: m.Panicked, reason: fmt.Sprint(rec)}
				return
			}

			if !returned {
				done <- attempt{state: m.Panicked, reason: "test body exited without returning"}
			}
		}()

		if item.Body == nil {
			returned = true
			done <- attempt{state: m.Failed, reason: "missing test body"}

			return
		}

		err := item.Body(itemCtx)
		returned = true

		if err != nil {
			done <- attempt{state: m.Failed, reason: err.Error()}
			return
		}

		done <- attempt{state: m.Passed}
	}()

	var outcome attempt

	select {
	case outcome = <-done:
		if outcome.state == m.Failed && itemCtx.Err() == context.DeadlineExceeded {
			outcome = attempt{state: m.Failed, reason: m.TimeoutReason}
			result.TimedOut = true
		}
	case <-itemCtx.Done():
		outcome = attempt{state: m.Failed, reason: m.TimeoutReason}
		result.TimedOut = true
	}

	result.State = outcome.state
	result.Reason = outcome.reason
	result.Duration = time.Since(start)

	if outcome.state != m.Passed {
		slog.Debug("Test did not pass", "root", result.Root, "path", result.Path, "state", outcome.state, "reason", outcome.reason)
	}

	return result
}

func pendingResult(item m.TestItem) m.TestResult {
	return m.TestResult{
		Index: item.Index,
		Path:  item.Path.String(),
		Root:  item.Root.String(),
		Style: item.Style.String(),
		State: m.Pending,
	}
}

type noopListener struct{}

func (noopListener) TestStarted(context.Context, m.TestItem, int) {}

func (noopListener) TestCompleted(context.Context, m.TestResult) {}
