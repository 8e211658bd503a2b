package core

// Runs a setup or teardown phase. Returning an error, or panicking, is a
// phase fault that gets recorded in the report.
type PhaseFunc = func(c *Context) error

// Runs the body of a test case, recording checks into r.
type TestFunc = func(c *Context, r *CheckResult) error

type TestCase struct {
	// Human readable label of the test.
	What string
	How  TestFunc
}

// ContextDeclaration describes one setup/tests/teardown execution unit.
type ContextDeclaration struct {
	Setup    PhaseFunc
	Teardown PhaseFunc

	// Strategy tag. Anything starting with "async", in any case, selects the
	// asynchronous strategy; everything else is synchronous.
	Strategy string

	// A nil slice means the declaration has no tests field at all, which is
	// an error for named contexts. An empty slice is a valid, empty context.
	Tests []TestCase
}

// Entry is one element of a SuiteDeclaration: either a TestEntry or a
// NamedContext.
type Entry interface {
	entry()
}

// TestEntry holds the tests, setup, teardown and strategy that sit directly on
// the suite instead of inside a named context.
type TestEntry struct {
	Declaration ContextDeclaration
}

// NamedContext is a nested context of a suite.
type NamedContext struct {
	Name        string
	Declaration ContextDeclaration
}

func (TestEntry) entry()    {}
func (NamedContext) entry() {}

// SuiteDeclaration is the ordered list of entries registered with a single
// call to the facade. Order is execution order.
type SuiteDeclaration []Entry

// RegisteredSuite pairs a suite declaration with its description.
type RegisteredSuite struct {
	Description string
	Declaration SuiteDeclaration
}
