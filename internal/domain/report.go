package domain

import (
	"sort"

	m "modtest.dev/pkg/modtest/internal/model"
)

// summarizeResults counts terminal states and derives the run outcome.
// Items that never reached a terminal state were not dispatched. A
// cancelled run is incomplete even when every item finished.
func summarizeResults(results []m.TestResult, cancelled bool) m.Report {
	counts := m.Counts{Total: len(results)}

	for _, result := range results {
		if !result.State.Terminal() {
			counts.NotRun++
			continue
		}

		switch result.State {
		case m.Passed:
			counts.Passed++
		case m.Failed:
			counts.Failed++
			if result.TimedOut {
				counts.TimedOut++
			}
		case m.Panicked:
			counts.Panicked++
		}
	}

	report := m.Report{
		Incomplete: cancelled || counts.NotRun > 0,
		Counts:     counts,
		Results:    results,
	}

	switch {
	case counts.Failed > 0 || counts.Panicked > 0:
		report.Outcome = m.Failure
	case report.Incomplete:
		report.Outcome = m.Incomplete
	default:
		report.Outcome = m.Success
	}

	return report
}

// MergeReports combines shard reports back into plan order and recomputes
// the summary. The merge is incomplete when any shard was.
func MergeReports(reports []m.Report) m.Report {
	var results []m.TestResult

	incomplete := false

	for _, report := range reports {
		results = append(results, report.Results...)
		incomplete = incomplete || report.Incomplete
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return summarizeResults(results, incomplete)
}
