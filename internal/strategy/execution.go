// Package strategy implements the two algorithms that drive a context through
// setup, its tests and teardown: Synchronous, where every phase returns before
// the next one starts, and Asynchronous, where every phase may suspend until
// it calls its continuation.
package strategy

import (
	"sync"

	"jester/pkg/jester/core"

	"github.com/sirupsen/logrus"
)

// Loop is the scheduler a strategy runs on.
type Loop interface {
	core.Scheduler

	// Marks a suspended phase so the loop keeps running until it completes.
	Hold() (release func())
}

// Strategy drives one context execution to StateDone and then calls done.
type Strategy interface {
	Kind() core.StrategyKind
	Execute(e *Execution, done func())
}

// Returns the strategy implementing kind.
func ForKind(kind core.StrategyKind) Strategy {
	if kind == core.StrategyAsync {
		return Asynchronous{}
	}
	return Synchronous{}
}

// Execution holds the state of a single context run: its fresh Context and the
// position in the state machine.
type Execution struct {
	name     string
	decl     *core.ContextDeclaration
	kind     core.StrategyKind
	ctx      *core.Context
	reporter core.Reporter
	loop     Loop
	log      *logrus.Entry
	onUsage  func(error)

	// Only touched from the loop goroutine.
	setupFailed bool

	mu    sync.Mutex
	state State
	index int
}

// Creates an execution for the named context. onUsage receives every
// *core.UsageError raised while the context runs; it may be nil.
func NewExecution(
	name string,
	decl *core.ContextDeclaration,
	reporter core.Reporter,
	loop Loop,
	log *logrus.Entry,
	onUsage func(error),
) *Execution {
	kind := core.ParseStrategy(decl.Strategy)
	entry := log.WithField("context", name).WithField("strategy", kind.String())

	e := &Execution{
		name:     name,
		decl:     decl,
		kind:     kind,
		reporter: reporter,
		loop:     loop,
		log:      entry,
		onUsage:  onUsage,
		state:    StateIdle,
		index:    -1,
	}

	e.ctx = core.NewContext(name, kind, loop, e, entry)
	return e
}

func (e *Execution) Name() string {
	return e.name
}

func (e *Execution) Kind() core.StrategyKind {
	return e.kind
}

func (e *Execution) Context() *core.Context {
	return e.ctx
}

func (e *Execution) Declaration() *core.ContextDeclaration {
	return e.decl
}

// Returns the current state and, while running, the index of the test.
func (e *Execution) State() (State, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state, e.index
}

// Continue implements core.Continuer for the Context returned by Context.
// Suspended phases are handed their own view, so this only sees calls made
// outside of a pending phase.
func (e *Execution) Continue() error {
	state, _ := e.State()
	if e.kind == core.StrategySync && state != StateDone {
		return nil
	}

	err := core.NewUsageError("next", "context '%s' has no pending phase to continue (state: %s)", e.name, state)
	e.usage(err)
	return err
}

func (e *Execution) setState(state State, index int) {
	e.mu.Lock()
	e.state = state
	e.index = index
	e.mu.Unlock()

	if state == StateRunning {
		e.log.Tracef("State: %s(%d)", state, index)
	} else {
		e.log.Tracef("State: %s", state)
	}
}

func (e *Execution) usage(err error) {
	e.log.WithError(err).Error("Usage error")
	if e.onUsage != nil {
		e.onUsage(err)
	}
}

// Records a fault raised by setup. The remaining tests are not run, teardown
// still is.
func (e *Execution) setupFault(err error) {
	e.setupFailed = true
	wrapped := newPhaseError(core.PhaseSetup, e.name, err)
	e.log.WithError(err).Error("Setup failed, skipping the tests of this context")
	e.reporter.ContextError(e.ctx, core.PhaseSetup, wrapped)
}

// Records a fault raised by teardown. It is never re-thrown.
func (e *Execution) teardownFault(err error) {
	wrapped := newPhaseError(core.PhaseTeardown, e.name, err)
	e.log.WithError(err).Error("Teardown failed")
	e.reporter.ContextError(e.ctx, core.PhaseTeardown, wrapped)
}

// Records a fault raised by a test body as a failing check of that test.
func (e *Execution) testFault(tc *core.TestCase, result *core.CheckResult, err error) {
	e.log.WithField("test", tc.What).WithError(err).Error("Test raised an unexpected error")
	result.RecordAnomaly(err)
}

// Emits the enter/exit pair of a test that is not run because setup failed.
func (e *Execution) skipTest(tc *core.TestCase) {
	result := core.NewCheckResult()
	result.MarkNotRun("setup failed")
	e.reporter.TestEnter(e.ctx, tc)
	e.reporter.TestExit(e.ctx, tc, result)
}

// A phase body, invoked with the context view the phase may call Next on.
type phaseFunc func(c *core.Context) error

func (e *Execution) setupFunc() phaseFunc {
	if e.decl.Setup == nil {
		return nil
	}
	return e.decl.Setup
}

func (e *Execution) teardownFunc() phaseFunc {
	if e.decl.Teardown == nil {
		return nil
	}
	return e.decl.Teardown
}

func (e *Execution) testFunc(tc *core.TestCase, result *core.CheckResult) phaseFunc {
	return func(c *core.Context) error { return tc.How(c, result) }
}

// Runs fn against c, converting a panic into an error.
func runPhase(fn phaseFunc, c *core.Context) error {
	return runCatchPanic(func() error { return fn(c) })
}
