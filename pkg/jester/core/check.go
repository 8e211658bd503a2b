package core

import (
	"fmt"
	"sync"
)

// Description used for the failing check recorded when a test body returns an
// error or panics.
const UnexpectedErrorDescription = "unexpected error"

// Check is one actual-vs-expected comparison recorded during a test body.
type Check struct {
	Description string
	Actual      any
	Expected    any
	Passed      bool

	// Set when the check was synthesized from a fault in the test body rather
	// than produced by a call to CheckResult.Check.
	Anomaly bool
}

type checkArgs struct {
	actual    any
	expect    any
	hasActual bool
	hasExpect bool
}

type CheckOption func(*checkArgs)

// Sets the value produced by the code under test.
func Actual(v any) CheckOption {
	return func(a *checkArgs) {
		a.actual = v
		a.hasActual = true
	}
}

// Sets the value the code under test is expected to produce.
func Expect(v any) CheckOption {
	return func(a *checkArgs) {
		a.expect = v
		a.hasExpect = true
	}
}

// CheckResult accumulates the checks of one test case execution. It is owned
// by that execution and handed to the reporter when the test exits.
type CheckResult struct {
	mu         sync.Mutex
	checks     []Check
	skipped    bool
	skipReason string
}

func NewCheckResult() *CheckResult {
	return &CheckResult{
		checks: make([]Check, 0),
	}
}

// Compares the Actual and Expect values with DeepEqual and records the
// outcome. A failing comparison is recorded, not returned: the only error is a
// *UsageError for a malformed call, in which case nothing is recorded.
func (r *CheckResult) Check(description string, opts ...CheckOption) error {
	var args checkArgs
	for _, opt := range opts {
		opt(&args)
	}

	if description == "" {
		return NewUsageError("check", "missing description")
	}

	if !args.hasActual {
		return NewUsageError("check", "check '%s' is missing the actual value", description)
	}

	if !args.hasExpect {
		return NewUsageError("check", "check '%s' is missing the expected value", description)
	}

	r.append(Check{
		Description: description,
		Actual:      args.actual,
		Expected:    args.expect,
		Passed:      DeepEqual(args.actual, args.expect),
	})

	return nil
}

// Shorthand for Check(description, Actual(actual), Expect(expect)).
func (r *CheckResult) Equal(description string, actual, expect any) error {
	return r.Check(description, Actual(actual), Expect(expect))
}

// Records a failing check for a fault raised by the test body.
func (r *CheckResult) RecordAnomaly(err error) {
	r.append(Check{
		Description: UnexpectedErrorDescription,
		Actual:      fmt.Sprint(err),
		Expected:    nil,
		Passed:      false,
		Anomaly:     true,
	})
}

// Marks the test as not run. Used when setup failed and the test body was
// never invoked.
func (r *CheckResult) MarkNotRun(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.skipped = true
	r.skipReason = reason
}

// Returns whether the test body was skipped, and why.
func (r *CheckResult) NotRun() (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.skipped, r.skipReason
}

// Returns a copy of the recorded checks in recording order.
func (r *CheckResult) Checks() []Check {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

func (r *CheckResult) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.checks)
}

// Returns the number of failed checks.
func (r *CheckResult) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	failures := 0
	for _, c := range r.checks {
		if !c.Passed {
			failures++
		}
	}
	return failures
}

// Returns true when no recorded check failed.
func (r *CheckResult) Passed() bool {
	return r.Failures() == 0
}

func (r *CheckResult) append(c Check) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checks = append(r.checks, c)
}
