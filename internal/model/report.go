package model

import (
	"context"
	"fmt"
	"time"
)

// TestBody is the opaque executable handle of a test item.
type TestBody func(ctx context.Context) error

// TestItem is a discovered unit of test execution.
type TestItem struct {
	// Index is the position in the full discovery plan. Filtering and
	// sharding keep it, so shard reports can be merged back in plan order.
	Index int
	Path  Path
	Root  Root
	Style TestStyle
	Body  TestBody
}

// TestState tracks an item through Pending -> Running -> terminal.
type TestState int

const (
	// Pending items have not been dispatched to a worker.
	Pending TestState = iota
	// Running items are executing inside a worker.
	Running
	// Passed items returned without error.
	Passed
	// Failed items returned an error or timed out.
	Failed
	// Panicked items terminated abnormally.
	Panicked
)

func (s TestState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Panicked:
		return "panicked"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so reports store the state by name.
func (s TestState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TestState) UnmarshalText(text []byte) error {
	for _, state := range []TestState{Pending, Running, Passed, Failed, Panicked} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}

	return fmt.Errorf("unknown test state %q", text)
}

// Terminal reports whether no further transition can happen.
func (s TestState) Terminal() bool {
	return s == Passed || s == Failed || s == Panicked
}

// TimeoutReason is the failure reason recorded for timed-out items.
const TimeoutReason = "timeout"

// TestResult is the outcome of one item.
type TestResult struct {
	Index    int           `yaml:"index"`
	Path     string        `yaml:"path"`
	Root     string        `yaml:"root"`
	Style    string        `yaml:"style"`
	State    TestState     `yaml:"status"`
	Reason   string        `yaml:"reason,omitempty"`
	TimedOut bool          `yaml:"timed_out,omitempty"`
	Duration time.Duration `yaml:"duration"`
}

// Outcome is the overall verdict of a run.
type Outcome string

const (
	// Success means zero failed and zero panicked items in a complete run.
	Success Outcome = "success"
	// Failure means at least one item failed or panicked.
	Failure Outcome = "failure"
	// Incomplete means the run was cancelled and nothing failed.
	Incomplete Outcome = "incomplete"
)

// Counts aggregates results by terminal state. TimedOut is a subset of Failed.
type Counts struct {
	Total    int `yaml:"total"`
	Passed   int `yaml:"passed"`
	Failed   int `yaml:"failed"`
	Panicked int `yaml:"panicked"`
	TimedOut int `yaml:"timed_out"`
	NotRun   int `yaml:"not_run"`
}

// Report is the aggregated result of one run, ordered by discovery.
type Report struct {
	Outcome    Outcome      `yaml:"outcome"`
	Incomplete bool         `yaml:"incomplete"`
	Counts     Counts       `yaml:"counts"`
	Results    []TestResult `yaml:"results"`
}

// Failures returns the failed and panicked results in report order.
func (r Report) Failures() []TestResult {
	var failures []TestResult

	for _, result := range r.Results {
		if result.State == Failed || result.State == Panicked {
			failures = append(failures, result)
		}
	}

	return failures
}
