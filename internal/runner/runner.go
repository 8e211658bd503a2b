// Package runner is the engine behind the facade: it parses suite
// declarations, runs each context under the strategy it selects and drives the
// event loop until the suite has finished.
package runner

import (
	"context"
	"errors"
	"sync"

	"jester/internal/eventloop"
	"jester/internal/strategy"
	"jester/pkg/jester/core"
	"jester/pkg/jester/utils"

	"github.com/sirupsen/logrus"
)

type Option func(*Runner)

func WithLoop(loop *eventloop.Loop) Option {
	return func(r *Runner) {
		r.loop = loop
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// Restricts runs to the given "suite" or "suite/context" paths. An empty
// selection runs everything.
func WithSelection(paths []string) Option {
	return func(r *Runner) {
		r.selection = utils.NewPathFilterFromSlice(paths, true)
	}
}

type Runner struct {
	reporter  core.Reporter
	loop      *eventloop.Loop
	log       *logrus.Logger
	selection *utils.PathFilter

	mu    sync.Mutex
	usage []error
}

func New(reporter core.Reporter, opts ...Option) *Runner {
	r := &Runner{
		reporter:  reporter,
		log:       logrus.StandardLogger(),
		selection: utils.NewPathFilterFromSlice(nil, true),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.loop == nil {
		r.loop = eventloop.New(eventloop.WithLogger(r.log))
	}

	return r
}

func (r *Runner) Reporter() core.Reporter {
	return r.reporter
}

func (r *Runner) Loop() *eventloop.Loop {
	return r.loop
}

// Runs one context under the strategy selected by its declaration. The
// context is entered immediately; done is called after the context exit has
// been reported. The returned execution can be inspected while the context
// runs.
func (r *Runner) RunContext(name string, decl *core.ContextDeclaration, done func()) *strategy.Execution {
	exec := strategy.NewExecution(name, decl, r.reporter, r.loop, logrus.NewEntry(r.log), r.recordUsage)
	strat := strategy.ForKind(exec.Kind())

	r.log.WithField("context", name).Debugf("Entering context (%s)", strat.Kind())
	r.reporter.ContextEnter(exec.Context(), decl)

	strat.Execute(exec, func() {
		r.reporter.ContextExit(exec.Context(), decl)
		r.log.WithField("context", name).Debug("Exited context")
		if done != nil {
			done()
		}
	})

	return exec
}

// Parses and runs a suite, then drives the event loop until every context
// has finished or ctx is done. Returns the usage errors raised during the
// run, joined, together with the error of ctx if it ended the run.
func (r *Runner) Run(ctx context.Context, description string, decl core.SuiteDeclaration) error {
	parsed, err := ParseSuite(description, decl)
	if err != nil {
		r.log.WithError(err).Errorf("Suite '%s' is malformed", description)
		return err
	}

	r.Start(parsed)

	loopErr := r.loop.Run(ctx)
	if loopErr != nil {
		r.log.WithError(loopErr).Warnf("Suite '%s' did not finish", description)
	}

	return errors.Join(loopErr, r.takeUsage())
}

type contextJob struct {
	name string
	decl *core.ContextDeclaration
}

// Queues the contexts of a parsed suite on the loop without running it. Named
// contexts come first in declaration order, the flat context last. The suite
// is entered before its first context and exited once the last one is done.
func (r *Runner) Start(parsed *ParsedSuite) {
	jobs := make([]contextJob, 0, len(parsed.Contexts)+1)
	for i := range parsed.Contexts {
		nc := &parsed.Contexts[i]
		if !r.selection.Match(parsed.Description + "/" + nc.Name) {
			r.log.Tracef("Skipping context '%s' because it is not selected", nc.Name)
			continue
		}
		jobs = append(jobs, contextJob{name: nc.Name, decl: &nc.Declaration})
	}

	if parsed.RunsFlat() && r.selection.Match(parsed.Description) {
		jobs = append(jobs, contextJob{name: parsed.Description, decl: &parsed.Flat})
	}

	if len(jobs) == 0 {
		r.log.Debugf("Nothing selected in suite '%s'", parsed.Description)
		return
	}

	r.log.Infof("Running suite '%s' - %d contexts", parsed.Description, len(jobs))

	// Flat-only suites get a suite record too, so every SuiteExit has its
	// SuiteEnter.
	entered := false
	remaining := len(jobs)
	for _, job := range jobs {
		r.loop.Post(func() {
			if !entered {
				entered = true
				r.reporter.SuiteEnter(parsed.Description)
			}

			r.RunContext(job.name, job.decl, func() {
				remaining--
				if remaining == 0 {
					r.reporter.SuiteExit(parsed.Description)
					r.log.Debugf("Suite '%s' completed", parsed.Description)
				}
			})
		})
	}
}

func (r *Runner) recordUsage(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.usage = append(r.usage, err)
}

func (r *Runner) takeUsage() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := errors.Join(r.usage...)
	r.usage = nil
	return err
}
