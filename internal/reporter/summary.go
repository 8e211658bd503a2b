package reporter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// TestSummary counts tests by status across a whole report.
type TestSummary struct {
	total    int
	passed   int
	failed   int
	notRun   int
	running  int
	errored  int
	checks   int
	failures int
}

func NewSummary(rep Report) TestSummary {
	var summary TestSummary

	for _, suite := range rep.Suites {
		for _, ctx := range suite.Contexts {
			summary.errored += len(ctx.Errors)
			for _, test := range ctx.Tests {
				summary.total++
				switch test.Status {
				case TestStatusPassed:
					summary.passed++
				case TestStatusFailed:
					summary.failed++
				case TestStatusNotRun:
					summary.notRun++
				default:
					summary.running++
				}
			}
		}
	}

	summary.checks = rep.Totals.Checks
	summary.failures = rep.Totals.Failures

	return summary
}

func (s TestSummary) Status() SummaryStatus {
	if s.errored > 0 {
		return SummaryStatusError
	}
	if s.failed > 0 || s.failures > 0 {
		return SummaryStatusFailed
	}
	return SummaryStatusOk
}

func (s TestSummary) Summary() string {
	var out []string

	if s.failed > 0 {
		out = append(out, fmt.Sprintf("failed: %s", humanize.Comma(int64(s.failed))))
	}
	if s.errored > 0 {
		out = append(out, fmt.Sprintf("errored: %s", humanize.Comma(int64(s.errored))))
	}
	if s.notRun > 0 {
		out = append(out, fmt.Sprintf("notrun: %s", humanize.Comma(int64(s.notRun))))
	}
	if s.running > 0 {
		out = append(out, fmt.Sprintf("unfinished: %s", humanize.Comma(int64(s.running))))
	}

	out = append(out, fmt.Sprintf("passed: %s", humanize.Comma(int64(s.passed))))
	out = append(out, fmt.Sprintf("total: %s", humanize.Comma(int64(s.total))))
	out = append(out, fmt.Sprintf("checks: %s", humanize.Comma(int64(s.checks))))

	return strings.Join(out, "; ")
}
