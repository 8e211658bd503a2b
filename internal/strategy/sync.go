package strategy

import "jester/pkg/jester/core"

// Synchronous runs every phase to completion before starting the next one.
// A faulting test does not stop its siblings.
type Synchronous struct{}

func (Synchronous) Kind() core.StrategyKind {
	return core.StrategySync
}

func (Synchronous) Execute(e *Execution, done func()) {
	e.setState(StateSettingUp, -1)
	if setup := e.setupFunc(); setup != nil {
		if err := runPhase(setup, e.ctx); err != nil {
			e.setupFault(err)
		}
	}

	for i := range e.decl.Tests {
		tc := &e.decl.Tests[i]
		e.setState(StateRunning, i)

		if e.setupFailed {
			e.skipTest(tc)
			continue
		}

		result := core.NewCheckResult()
		e.reporter.TestEnter(e.ctx, tc)
		e.log.WithField("test", tc.What).Debug("Running test")

		if err := runPhase(e.testFunc(tc, result), e.ctx); err != nil {
			e.testFault(tc, result, err)
		}

		e.reporter.TestExit(e.ctx, tc, result)
	}

	e.setState(StateTearingDown, -1)
	if teardown := e.teardownFunc(); teardown != nil {
		if err := runPhase(teardown, e.ctx); err != nil {
			e.teardownFault(err)
		}
	}

	e.setState(StateDone, -1)
	done()
}
