package core

type Phase int

const (
	PhaseSetup Phase = iota
	PhaseTest
	PhaseTeardown
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseTest:
		return "test"
	case PhaseTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// Reporter receives the enter/exit events of a run. Events are plain method
// calls made from the run's single logical thread.
type Reporter interface {
	SuiteEnter(description string)
	SuiteExit(description string)

	ContextEnter(c *Context, decl *ContextDeclaration)
	ContextExit(c *Context, decl *ContextDeclaration)

	// Reports a fault raised by the setup or teardown phase of a context.
	ContextError(c *Context, phase Phase, err error)

	TestEnter(c *Context, tc *TestCase)
	TestExit(c *Context, tc *TestCase, result *CheckResult)
}

// Counters is the numeric surface of a reporter. A non-zero Failures() is
// conventionally used as the exit status of a run.
type Counters interface {
	TestCount() int
	CheckCount() int
	Failures() int
	Errors() int
}
