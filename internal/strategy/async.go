package strategy

import (
	"fmt"
	"sync"

	"jester/pkg/jester/core"
)

// Asynchronous lets every phase suspend: after a phase function returns, the
// strategy waits for the phase to call Context.Next before queueing the next
// step. Only one phase of a context is pending at any time.
//
// There is no timeout. A phase that never calls Next stalls its context, which
// then never reaches StateDone. Callers that want a deadline must build it
// into their phase functions.
type Asynchronous struct{}

func (Asynchronous) Kind() core.StrategyKind {
	return core.StrategyAsync
}

func (Asynchronous) Execute(e *Execution, done func()) {
	e.setState(StateSettingUp, -1)
	e.suspend("setup", e.setupFunc(), func(err error) {
		if err != nil {
			e.setupFault(err)
		}
		e.runAsyncTest(0, done)
	})
}

func (e *Execution) runAsyncTest(i int, done func()) {
	if i >= len(e.decl.Tests) {
		e.runAsyncTeardown(done)
		return
	}

	tc := &e.decl.Tests[i]
	e.setState(StateRunning, i)

	if e.setupFailed {
		e.skipTest(tc)
		e.loop.Post(func() { e.runAsyncTest(i+1, done) })
		return
	}

	result := core.NewCheckResult()
	e.reporter.TestEnter(e.ctx, tc)
	e.log.WithField("test", tc.What).Debug("Running test")

	e.suspend(fmt.Sprintf("test '%s'", tc.What), e.testFunc(tc, result), func(err error) {
		if err != nil {
			e.testFault(tc, result, err)
		}
		e.reporter.TestExit(e.ctx, tc, result)
		e.runAsyncTest(i+1, done)
	})
}

func (e *Execution) runAsyncTeardown(done func()) {
	e.setState(StateTearingDown, -1)
	e.suspend("teardown", e.teardownFunc(), func(err error) {
		if err != nil {
			e.teardownFault(err)
		}
		e.setState(StateDone, -1)
		done()
	})
}

// Invokes fn as a suspendable phase. then runs on the loop once the phase has
// completed, either through its continuation or by faulting. A nil fn is an
// undeclared phase and completes immediately.
func (e *Execution) suspend(label string, fn phaseFunc, then func(err error)) {
	if fn == nil {
		e.loop.Post(func() { then(nil) })
		return
	}

	cont := &continuation{
		exec:    e,
		label:   label,
		release: e.loop.Hold(),
	}
	cont.then = func() { then(cont.faultErr()) }

	if err := runPhase(fn, e.ctx.WithContinuer(cont)); err != nil {
		cont.fault(err)
	}
}

// The completion signal of one suspended phase. It implements core.Continuer
// for the context view handed to that phase.
type continuation struct {
	exec    *Execution
	label   string
	then    func()
	release func()

	mu        sync.Mutex
	fired     bool
	completed bool
	err       error
}

func (c *continuation) Continue() error {
	return c.fire()
}

func (c *continuation) fire() error {
	c.mu.Lock()
	if c.fired {
		c.mu.Unlock()
		err := core.NewUsageError("next", "continuation of %s in context '%s' called more than once", c.label, c.exec.name)
		c.exec.usage(err)
		return err
	}

	c.fired = true
	if c.completed {
		c.mu.Unlock()
		return nil
	}
	c.completed = true
	c.mu.Unlock()

	c.complete()
	return nil
}

// Completes the phase with a fault. A fault raised after the phase already
// called Next is still attached to the phase as long as its completion has
// not been processed by the loop.
func (c *continuation) fault(err error) {
	c.mu.Lock()
	c.err = err
	if c.completed {
		c.mu.Unlock()
		return
	}
	c.completed = true
	c.mu.Unlock()

	c.complete()
}

func (c *continuation) complete() {
	// Queue before releasing the hold so the loop never observes an empty
	// queue with no holds in between.
	c.exec.loop.Post(c.then)
	c.release()
}

func (c *continuation) faultErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}
