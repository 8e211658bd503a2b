package jester

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func contextA() NamedContext {
	return Named("Tests with context A", ContextDeclaration{
		Setup: func(c *Context) error {
			c.Set("prop", "value1")
			return nil
		},
		Tests: []TestCase{
			Test("prop", func(c *Context, r *CheckResult) error {
				return r.Check("context.prop", Actual(c.Value("prop")), Expect("value1"))
			}),
		},
	})
}

func TestTestingUsesDefaultReporter(t *testing.T) {
	previous := DefaultReporter()
	defer SetDefaultReporter(previous)

	rep := NewRunner(WithLogger(quietLogger())).inner.Reporter()
	assert.Same(t, previous, rep)

	fresh := NewReporter()
	SetDefaultReporter(fresh)

	require.NoError(t, Testing("Jester", SuiteDeclaration{contextA()}))
	assert.Equal(t, 1, fresh.TestCount())
	assert.Equal(t, 1, fresh.CheckCount())
	assert.Equal(t, 0, fresh.Failures())

	require.NoError(t, Testing("Answers", SuiteDeclaration{
		Inline(ContextDeclaration{
			Tests: []TestCase{
				Test("answer", func(c *Context, r *CheckResult) error {
					return r.Check("answer", Actual(54), Expect(42))
				}),
			},
		}),
	}))
	assert.Equal(t, 1, fresh.Failures())
	assert.Contains(t, fresh.String(), "FAIL answer: expected 42, got 54")
}

func TestTestingReturnsUsageErrors(t *testing.T) {
	previous := DefaultReporter()
	defer SetDefaultReporter(previous)
	SetDefaultReporter(NewReporter())

	err := Testing("Broken", SuiteDeclaration{
		Inline(ContextDeclaration{
			Tests: []TestCase{
				Test("no expect", func(c *Context, r *CheckResult) error {
					return r.Check("half", Actual(1))
				}),
			},
		}),
		Named("dup", ContextDeclaration{Tests: []TestCase{}}),
		Named("dup", ContextDeclaration{Tests: []TestCase{}}),
	})

	var ue *UsageError
	assert.ErrorAs(t, err, &ue)
}

func TestRunnerIsolated(t *testing.T) {
	rep := NewReporter()
	r := NewRunner(WithReporter(rep), WithLogger(quietLogger()), WithSelection("Suite/A"))

	err := r.Run(context.Background(), "Suite", SuiteDeclaration{
		Named("A", ContextDeclaration{Tests: []TestCase{
			Test("a", func(c *Context, r *CheckResult) error { return r.Check("a", Actual(1), Expect(1.0)) }),
		}}),
		Named("B", ContextDeclaration{Tests: []TestCase{
			Test("b", func(c *Context, r *CheckResult) error { return r.Check("b", Actual(1), Expect(2)) }),
		}}),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.TestCount())
	assert.Equal(t, 0, rep.Failures())
}

func TestRunnerRealTime(t *testing.T) {
	rep := NewReporter()
	r := NewRunner(WithReporter(rep), WithLogger(quietLogger()), WithRealTime())

	began := time.Now()
	err := r.Run(context.Background(), "Clock", SuiteDeclaration{
		Named("waits", ContextDeclaration{
			Strategy: "async",
			Tests: []TestCase{
				Test("sleeps", func(c *Context, r *CheckResult) error {
					c.Scheduler().After(20*time.Millisecond, func() {
						_ = r.Check("woke", Actual(true), Expect(true))
						_ = c.Next()
					})
					return nil
				}),
			},
		}),
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(began), 20*time.Millisecond)
	assert.Equal(t, 1, rep.CheckCount())
}

func TestDeepEqualExported(t *testing.T) {
	assert.True(t, DeepEqual(map[string]int{"a": 1, "b": 2}, map[string]int{"a": 1, "b": 2}))
	assert.False(t, DeepEqual([]int{1, 2, 3}, []int{1, 3, 2}))
}
