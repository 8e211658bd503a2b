package devops

import (
	"bytes"
	"errors"
	"testing"

	"jester/internal/reporter"
	"jester/pkg/jester/core"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGroups(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	outer := p.OpenGroup("outer")
	p.OpenGroup("inner")
	p.CloseGroup(outer)
	p.CloseGroup(outer)

	assert.Equal(t, "##[group]outer\n##[group]inner\n##[endgroup]\n##[endgroup]\n", buf.String())
}

func TestLogIssues(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.LogError("failed %d", 1)
	p.LogWarning("careful")

	assert.Equal(t,
		"##vso[task.logissue type=error]failed 1\n##vso[task.logissue type=warning]careful\n",
		buf.String(),
	)
}

func TestReporterDecoratesEvents(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	var buf bytes.Buffer
	inner := reporter.New(reporter.WithLogger(log))
	r := NewReporter(inner, NewPrinter(&buf))

	c := core.NewContext("ctx", core.StrategySync, nil, nil, logrus.NewEntry(log))
	decl := &core.ContextDeclaration{}

	r.SuiteEnter("suite")
	r.ContextEnter(c, decl)
	r.ContextError(c, core.PhaseSetup, errors.New("no db"))

	tc := &core.TestCase{What: "answer"}
	result := core.NewCheckResult()
	_ = result.Check("answer", core.Actual(54), core.Expect(42))
	r.TestEnter(c, tc)
	r.TestExit(c, tc, result)

	skipped := &core.TestCase{What: "skipped"}
	notRun := core.NewCheckResult()
	notRun.MarkNotRun("setup failed")
	r.TestEnter(c, skipped)
	r.TestExit(c, skipped, notRun)

	r.ContextExit(c, decl)
	r.SuiteExit("suite")

	assert.Equal(t, ""+
		"##[group]ctx\n"+
		"##vso[task.logissue type=error]Context 'ctx' setup failed: no db\n"+
		"##vso[task.logissue type=error]Test 'answer' in context 'ctx': check 'answer' failed: expected 42, got 54\n"+
		"##vso[task.logissue type=warning]Test 'skipped' in context 'ctx' not run: setup failed\n"+
		"##[endgroup]\n",
		buf.String(),
	)

	// Events still reach the wrapped reporter.
	assert.Equal(t, 2, inner.TestCount())
	assert.Equal(t, 1, inner.Failures())
	assert.Equal(t, 1, inner.Errors())
}
