package core

import (
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler is the cooperative task queue a run executes on. Phases use it to
// defer work instead of spawning timers of their own.
type Scheduler interface {
	// Queues fn to run after everything already queued.
	Post(fn func())

	// Queues fn to run once d has elapsed on the scheduler's clock.
	After(d time.Duration, fn func())

	// Returns the scheduler's current time.
	Now() time.Time
}

// Continuer is implemented by execution strategies to receive the completion
// signal of the phase currently running in a context.
type Continuer interface {
	Continue() error
}

// Context is the mutable property bag shared by the setup, tests and teardown
// of one context run. A fresh Context is created for every run and discarded
// after teardown.
type Context struct {
	name      string
	strategy  StrategyKind
	scheduler Scheduler
	continuer Continuer
	log       *logrus.Entry

	props *properties
}

type properties struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewContext(name string, strategy StrategyKind, scheduler Scheduler, continuer Continuer, log *logrus.Entry) *Context {
	return &Context{
		name:      name,
		strategy:  strategy,
		scheduler: scheduler,
		continuer: continuer,
		log:       log,
		props:     &properties{values: make(map[string]any)},
	}
}

// Returns a view of c that shares its properties but sends Next to
// continuer. Strategies hand one view to every suspended phase so a late
// Next can only reach the phase it was given to.
func (c *Context) WithContinuer(continuer Continuer) *Context {
	view := *c
	view.continuer = continuer
	return &view
}

// Reports whether c and other are views of the same context run.
func (c *Context) SameRun(other *Context) bool {
	return other != nil && c.props == other.props
}

func (c *Context) Name() string {
	return c.name
}

func (c *Context) Strategy() StrategyKind {
	return c.strategy
}

func (c *Context) Scheduler() Scheduler {
	return c.scheduler
}

func (c *Context) Logger() *logrus.Entry {
	return c.log
}

// Signals that the current phase has finished. Asynchronous phases must call
// it exactly once; a second call in the same phase returns a *UsageError and
// has no other effect. In synchronous contexts it is a no-op.
//
// Next may be called from any goroutine.
func (c *Context) Next() error {
	if c.continuer == nil {
		return NewUsageError("next", "context '%s' has no running phase", c.name)
	}

	return c.continuer.Continue()
}

func (c *Context) Set(key string, value any) {
	c.props.mu.Lock()
	defer c.props.mu.Unlock()

	c.props.values[key] = value
}

func (c *Context) Get(key string) (any, bool) {
	c.props.mu.RLock()
	defer c.props.mu.RUnlock()

	v, ok := c.props.values[key]
	return v, ok
}

// Returns the value stored under key, or nil when absent.
func (c *Context) Value(key string) any {
	v, _ := c.Get(key)
	return v
}

func (c *Context) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Context) Delete(key string) {
	c.props.mu.Lock()
	defer c.props.mu.Unlock()

	delete(c.props.values, key)
}

// Returns the property names in sorted order.
func (c *Context) Keys() []string {
	c.props.mu.RLock()
	defer c.props.mu.RUnlock()

	keys := make([]string, 0, len(c.props.values))
	for k := range c.props.values {
		keys = append(keys, k)
	}

	slices.Sort(keys)
	return keys
}

// Copies every property of parent into c. Values are copied, the two contexts
// do not share the property map afterwards.
func (c *Context) Inherit(parent *Context) {
	if parent == nil || c.SameRun(parent) {
		return
	}

	parent.props.mu.RLock()
	snapshot := make(map[string]any, len(parent.props.values))
	for k, v := range parent.props.values {
		snapshot[k] = v
	}
	parent.props.mu.RUnlock()

	c.props.mu.Lock()
	defer c.props.mu.Unlock()
	for k, v := range snapshot {
		c.props.values[k] = v
	}
}
