// Package devops decorates a reporter with Azure DevOps logging commands:
// every context becomes a collapsible group and every failed check or phase
// fault is raised as a pipeline issue.
package devops

import (
	"sync"

	"jester/pkg/jester/core"
)

type Reporter struct {
	core.Reporter

	mu      sync.Mutex
	printer *Printer
	groups  map[*core.Context]*Group
}

// Wraps inner. Events are forwarded to inner after the logging commands have
// been printed.
func NewReporter(inner core.Reporter, printer *Printer) *Reporter {
	return &Reporter{
		Reporter: inner,
		printer:  printer,
		groups:   make(map[*core.Context]*Group),
	}
}

func (r *Reporter) ContextEnter(c *core.Context, decl *core.ContextDeclaration) {
	r.mu.Lock()
	r.groups[c] = r.printer.OpenGroup(c.Name())
	r.mu.Unlock()

	r.Reporter.ContextEnter(c, decl)
}

func (r *Reporter) ContextExit(c *core.Context, decl *core.ContextDeclaration) {
	r.Reporter.ContextExit(c, decl)

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[c]; ok {
		r.printer.CloseGroup(g)
		delete(r.groups, c)
	}
}

func (r *Reporter) ContextError(c *core.Context, phase core.Phase, err error) {
	r.mu.Lock()
	r.printer.LogError("Context '%s' %s failed: %s", c.Name(), phase, err)
	r.mu.Unlock()

	r.Reporter.ContextError(c, phase, err)
}

func (r *Reporter) TestExit(c *core.Context, tc *core.TestCase, result *core.CheckResult) {
	r.mu.Lock()
	if notRun, reason := result.NotRun(); notRun {
		r.printer.LogWarning("Test '%s' in context '%s' not run: %s", tc.What, c.Name(), reason)
	}
	for _, check := range result.Checks() {
		if check.Passed {
			continue
		}
		r.printer.LogError("Test '%s' in context '%s': check '%s' failed: expected %v, got %v",
			tc.What, c.Name(), check.Description, check.Expected, check.Actual)
	}
	r.mu.Unlock()

	r.Reporter.TestExit(c, tc, result)
}
