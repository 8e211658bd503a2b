package core

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct{}

func (fakeScheduler) Post(fn func())                  { fn() }
func (fakeScheduler) After(d time.Duration, fn func()) { fn() }
func (fakeScheduler) Now() time.Time                   { return time.Unix(0, 0) }

type countingContinuer struct {
	calls int
}

func (c *countingContinuer) Continue() error {
	c.calls++
	return nil
}

func newTestContext(name string, continuer Continuer) *Context {
	return NewContext(name, StrategySync, fakeScheduler{}, continuer, logrus.NewEntry(logrus.New()))
}

func TestContextProperties(t *testing.T) {
	c := newTestContext("A", nil)

	assert.False(t, c.Has("prop"))
	assert.Nil(t, c.Value("prop"))

	c.Set("prop", "value1")
	c.Set("answer", 42)

	v, ok := c.Get("prop")
	assert.True(t, ok)
	assert.Equal(t, "value1", v)
	assert.Equal(t, []string{"answer", "prop"}, c.Keys())

	c.Delete("prop")
	assert.False(t, c.Has("prop"))
	assert.Equal(t, []string{"answer"}, c.Keys())
}

func TestContextInherit(t *testing.T) {
	parent := newTestContext("parent", nil)
	parent.Set("shared", "yes")

	child := newTestContext("child", nil)
	child.Set("own", 1)
	child.Inherit(parent)

	assert.Equal(t, "yes", child.Value("shared"))
	assert.Equal(t, 1, child.Value("own"))

	child.Set("shared", "changed")
	assert.Equal(t, "yes", parent.Value("shared"))
	assert.False(t, parent.Has("own"))
}

func TestContextNext(t *testing.T) {
	continuer := &countingContinuer{}
	c := newTestContext("A", continuer)

	assert.NoError(t, c.Next())
	assert.Equal(t, 1, continuer.calls)

	detached := newTestContext("detached", nil)
	assert.True(t, IsUsageError(detached.Next()))
}

func TestContextWithContinuer(t *testing.T) {
	base := newTestContext("A", &countingContinuer{})
	phase := &countingContinuer{}
	view := base.WithContinuer(phase)

	view.Set("prop", "value1")
	assert.Equal(t, "value1", base.Value("prop"))
	assert.True(t, base.SameRun(view))
	assert.Equal(t, "A", view.Name())

	require.NoError(t, view.Next())
	assert.Equal(t, 1, phase.calls)
	assert.Equal(t, 0, base.continuer.(*countingContinuer).calls)

	other := newTestContext("A", nil)
	assert.False(t, base.SameRun(other))
	assert.False(t, base.SameRun(nil))

	view.Inherit(base)
	assert.Equal(t, []string{"prop"}, base.Keys())
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyAsync, ParseStrategy("async"))
	assert.Equal(t, StrategyAsync, ParseStrategy("ASYNC"))
	assert.Equal(t, StrategyAsync, ParseStrategy("asynchronous"))
	assert.Equal(t, StrategySync, ParseStrategy(""))
	assert.Equal(t, StrategySync, ParseStrategy("sync"))
	assert.Equal(t, StrategySync, ParseStrategy("not async"))
}
