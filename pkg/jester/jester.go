// Package jester is the entry point for test authors: declare a suite of
// contexts and run it with Testing, or build an isolated Runner.
//
//	err := jester.Testing("Arithmetic", jester.SuiteDeclaration{
//		jester.Named("addition", jester.ContextDeclaration{
//			Tests: []jester.TestCase{
//				jester.Test("adds", func(c *jester.Context, r *jester.CheckResult) error {
//					return r.Check("1+1", jester.Actual(1+1), jester.Expect(2))
//				}),
//			},
//		}),
//	})
package jester

import (
	"context"
	"sync"

	"jester/internal/eventloop"
	"jester/internal/reporter"
	"jester/internal/runner"
	"jester/pkg/jester/core"
	"jester/pkg/jester/suite"

	"github.com/sirupsen/logrus"
)

type (
	Context            = core.Context
	CheckResult        = core.CheckResult
	Check              = core.Check
	CheckOption        = core.CheckOption
	TestCase           = core.TestCase
	ContextDeclaration = core.ContextDeclaration
	SuiteDeclaration   = core.SuiteDeclaration
	Entry              = core.Entry
	NamedContext       = core.NamedContext
	TestEntry          = core.TestEntry
	UsageError         = core.UsageError
	Reporter           = core.Reporter
	SuiteReporter      = reporter.SuiteReporter
	Report             = reporter.Report
)

func Actual(v any) CheckOption {
	return core.Actual(v)
}

func Expect(v any) CheckOption {
	return core.Expect(v)
}

func DeepEqual(a, b any) bool {
	return core.DeepEqual(a, b)
}

func Named(name string, decl ContextDeclaration) NamedContext {
	return NamedContext{Name: name, Declaration: decl}
}

// Declares tests, setup or teardown directly on the suite.
func Inline(decl ContextDeclaration) TestEntry {
	return TestEntry{Declaration: decl}
}

func Test(what string, how core.TestFunc) TestCase {
	return TestCase{What: what, How: how}
}

// Creates a launcher program with the given name. Register suites with
// AddSuite, then call Run from main.
func CreateProgram(name string) suite.JesterProgram {
	return suite.CreateProgram(name)
}

var (
	defaultMu       sync.Mutex
	defaultReporter = reporter.New()
)

// Creates an empty reporter, e.g. to pass to WithReporter or
// SetDefaultReporter.
func NewReporter() *SuiteReporter {
	return reporter.New()
}

// Returns the process wide reporter that Testing reports to.
func DefaultReporter() *SuiteReporter {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	return defaultReporter
}

// Replaces the process wide reporter. Reporters are never reset, so this is
// how a caller starts a new report.
func SetDefaultReporter(r *SuiteReporter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultReporter = r
}

// Runs a suite against the default reporter and returns once every context
// has finished. The returned error joins the usage errors raised by the
// declaration or during the run; assertion failures are only reported.
func Testing(description string, decl SuiteDeclaration) error {
	return NewRunner().Run(context.Background(), description, decl)
}

type runnerConfig struct {
	reporter  core.Reporter
	realTime  bool
	log       *logrus.Logger
	selection []string
}

type RunnerOption func(*runnerConfig)

func WithReporter(r core.Reporter) RunnerOption {
	return func(c *runnerConfig) {
		c.reporter = r
	}
}

// Runs deferred work on the wall clock instead of the virtual clock.
func WithRealTime() RunnerOption {
	return func(c *runnerConfig) {
		c.realTime = true
	}
}

func WithLogger(log *logrus.Logger) RunnerOption {
	return func(c *runnerConfig) {
		c.log = log
	}
}

// Restricts runs to the given "suite" or "suite/context" paths.
func WithSelection(paths ...string) RunnerOption {
	return func(c *runnerConfig) {
		c.selection = append(c.selection, paths...)
	}
}

type Runner struct {
	inner *runner.Runner
}

// Builds a runner. Without WithReporter it reports to the default reporter.
func NewRunner(opts ...RunnerOption) *Runner {
	cfg := &runnerConfig{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.reporter == nil {
		cfg.reporter = DefaultReporter()
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(cfg.log),
		runner.WithSelection(cfg.selection),
	}
	if cfg.realTime {
		loop := eventloop.New(eventloop.WithRealTime(), eventloop.WithLogger(cfg.log))
		runnerOpts = append(runnerOpts, runner.WithLoop(loop))
	}

	return &Runner{inner: runner.New(cfg.reporter, runnerOpts...)}
}

// Runs a suite and waits for it to finish or for ctx to end. Stalled async
// contexts are not timed out: bound ctx to give up on them.
func (r *Runner) Run(ctx context.Context, description string, decl SuiteDeclaration) error {
	return r.inner.Run(ctx, description, decl)
}
