// Package reporter implements the suite reporter: it turns the enter/exit
// events of a run into running totals and an ordered report, and renders that
// report as text, a tree, a table, JSON or YAML.
package reporter

import (
	"fmt"
	"strconv"
	"sync"

	"jester/pkg/jester/core"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Description of the suite record created for contexts that run outside of
// any suite, e.g. through Runner.RunContext.
const DetachedSuite = "(no suite)"

type Option func(*SuiteReporter)

func WithLogger(log *logrus.Logger) Option {
	return func(r *SuiteReporter) {
		r.log = log
	}
}

// SuiteReporter accumulates the events of every suite run against it. It is
// never reset; construct a fresh one to start a new report. All methods are
// safe for concurrent use.
type SuiteReporter struct {
	mu     sync.Mutex
	log    *logrus.Logger
	report Report

	currentSuite int
	contexts     map[*core.Context]contextPos
	runningTests map[*core.Context]int
}

type contextPos struct {
	suite   int
	context int
}

func New(opts ...Option) *SuiteReporter {
	r := &SuiteReporter{
		log: logrus.StandardLogger(),
		report: Report{
			RunID:  uuid.NewString(),
			Suites: make([]SuiteRecord, 0),
		},
		currentSuite: -1,
		contexts:     make(map[*core.Context]contextPos),
		runningTests: make(map[*core.Context]int),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var _ core.Reporter = (*SuiteReporter)(nil)
var _ core.Counters = (*SuiteReporter)(nil)

func (r *SuiteReporter) SuiteEnter(description string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.report.Suites = append(r.report.Suites, SuiteRecord{
		Description: description,
		Contexts:    make([]ContextRecord, 0),
	})
	r.currentSuite = len(r.report.Suites) - 1

	r.log.WithField("suite", description).Debug("Suite entered")
}

func (r *SuiteReporter) SuiteExit(description string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentSuite < 0 {
		r.log.WithField("suite", description).Warn("Suite exit without a matching enter")
		return
	}

	r.report.Suites[r.currentSuite].Finished = true
	r.currentSuite = -1

	r.log.WithField("suite", description).Debug("Suite exited")
}

func (r *SuiteReporter) ContextEnter(c *core.Context, decl *core.ContextDeclaration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	suite := r.currentSuite
	if suite < 0 {
		r.report.Suites = append(r.report.Suites, SuiteRecord{
			Description: DetachedSuite,
			Contexts:    make([]ContextRecord, 0),
		})
		suite = len(r.report.Suites) - 1
	}

	contexts := &r.report.Suites[suite].Contexts
	*contexts = append(*contexts, ContextRecord{
		Name:     c.Name(),
		Strategy: core.ParseStrategy(decl.Strategy).String(),
		Tests:    make([]TestRecord, 0),
	})

	r.contexts[c] = contextPos{suite: suite, context: len(*contexts) - 1}
}

func (r *SuiteReporter) ContextExit(c *core.Context, decl *core.ContextDeclaration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.contextRecord(c)
	if rec == nil {
		return
	}

	rec.Finished = true
	delete(r.runningTests, c)
	delete(r.contexts, c)
}

func (r *SuiteReporter) ContextError(c *core.Context, phase core.Phase, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.report.Totals.Errors++

	rec := r.contextRecord(c)
	if rec == nil {
		return
	}

	rec.Errors = append(rec.Errors, PhaseErrorRecord{
		Phase:   phase.String(),
		Message: err.Error(),
	})

	r.log.WithField("context", c.Name()).
		WithField("phase", phase.String()).
		WithError(err).
		Error("Context error")
}

func (r *SuiteReporter) TestEnter(c *core.Context, tc *core.TestCase) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.contextRecord(c)
	if rec == nil {
		return
	}

	rec.Tests = append(rec.Tests, TestRecord{
		What:   tc.What,
		Status: TestStatusRunning,
		Checks: make([]CheckRecord, 0),
	})
	r.runningTests[c] = len(rec.Tests) - 1
}

func (r *SuiteReporter) TestExit(c *core.Context, tc *core.TestCase, result *core.CheckResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	checks := result.Checks()
	failures := 0
	records := make([]CheckRecord, 0, len(checks))
	for _, check := range checks {
		if !check.Passed {
			failures++
		}
		records = append(records, CheckRecord{
			Description: check.Description,
			Actual:      FormatValue(check.Actual),
			Expected:    FormatValue(check.Expected),
			Passed:      check.Passed,
			Anomaly:     check.Anomaly,
		})
	}

	r.report.Totals.Tests++
	r.report.Totals.Checks += len(checks)
	r.report.Totals.Failures += failures

	status := TestStatusPassed
	notRun, reason := result.NotRun()
	switch {
	case notRun:
		status = TestStatusNotRun
	case failures > 0:
		status = TestStatusFailed
	}

	r.log.WithField("test", tc.What).
		WithField("status", status.String()).
		Logf(status.logLevel(), "%s: %s", tc.What, status.String())

	rec := r.contextRecord(c)
	if rec == nil {
		return
	}

	idx, ok := r.runningTests[c]
	if !ok || idx >= len(rec.Tests) {
		rec.Tests = append(rec.Tests, TestRecord{What: tc.What})
		idx = len(rec.Tests) - 1
	}
	delete(r.runningTests, c)

	test := &rec.Tests[idx]
	test.Status = status
	test.Reason = reason
	test.Checks = append(test.Checks, records...)
}

func (r *SuiteReporter) TestCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.Totals.Tests
}

func (r *SuiteReporter) CheckCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.Totals.Checks
}

// Returns the number of failed checks, including checks recorded for
// unexpected errors raised by test bodies.
func (r *SuiteReporter) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.Totals.Failures
}

// Returns the number of setup and teardown faults.
func (r *SuiteReporter) Errors() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.Totals.Errors
}

// Returns a copy of the accumulated report.
func (r *SuiteReporter) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.report.clone()
}

func (r *SuiteReporter) RunID() string {
	return r.report.RunID
}

// String renders the report as text. Repeated calls on the same state return
// the same string.
func (r *SuiteReporter) String() string {
	return RenderText(r.Report())
}

// Must be called with the lock held.
func (r *SuiteReporter) contextRecord(c *core.Context) *ContextRecord {
	pos, ok := r.contexts[c]
	if !ok {
		r.log.WithField("context", c.Name()).Warn("Event for a context that was never entered")
		return nil
	}

	return &r.report.Suites[pos.suite].Contexts[pos.context]
}

// Formats a checked value for the report. Strings are quoted so that "42" and
// 42 stay distinguishable.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case error:
		return strconv.Quote(val.Error())
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Returns the exit status of a run: failures plus errors, capped at 125.
func ExitStatus(c core.Counters) int {
	status := c.Failures() + c.Errors()
	if status > 125 {
		return 125
	}
	return status
}
