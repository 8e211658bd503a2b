// Package selftest holds Jester's own suites: they exercise contexts, both
// strategies, deferred continuations and deep equality through the public
// API.
package selftest

import (
	"time"

	"jester/pkg/jester"
)

const (
	ContextsSuite = "Jester contexts"
	EqualitySuite = "Jester deep equality"
)

// Three contexts that must not see each other's properties, one of them
// asynchronous with a deferred continuation.
func Contexts() jester.SuiteDeclaration {
	return jester.SuiteDeclaration{
		jester.Named("Tests with context A", jester.ContextDeclaration{
			Setup: func(c *jester.Context) error {
				c.Set("prop", "value1")
				return nil
			},
			Tests: []jester.TestCase{
				jester.Test("setup property is visible", func(c *jester.Context, r *jester.CheckResult) error {
					return r.Check("context.prop", jester.Actual(c.Value("prop")), jester.Expect("value1"))
				}),
			},
		}),
		jester.Named("Tests with sync context 2", jester.ContextDeclaration{
			Strategy: "sync",
			Tests: []jester.TestCase{
				jester.Test("sibling properties do not leak", func(c *jester.Context, r *jester.CheckResult) error {
					return r.Check("context has prop", jester.Actual(c.Has("prop")), jester.Expect(false))
				}),
				jester.Test("properties set by a test reach the next one", func(c *jester.Context, r *jester.CheckResult) error {
					c.Set("counter", 1)
					return r.Check("counter", jester.Actual(c.Value("counter")), jester.Expect(1))
				}),
				jester.Test("reads the previous test's property", func(c *jester.Context, r *jester.CheckResult) error {
					return r.Check("counter", jester.Actual(c.Value("counter")), jester.Expect(1))
				}),
			},
		}),
		jester.Named("Tests with async context", jester.ContextDeclaration{
			Strategy: "async",
			Setup: func(c *jester.Context) error {
				c.Set("order", []string{})
				c.Scheduler().After(50*time.Millisecond, func() {
					_ = c.Next()
				})
				return nil
			},
			Tests: []jester.TestCase{
				jester.Test("deferred continuation", func(c *jester.Context, r *jester.CheckResult) error {
					start := c.Scheduler().Now()
					c.Scheduler().After(200*time.Millisecond, func() {
						c.Set("order", append(c.Value("order").([]string), "first"))
						_ = r.Check("waited", jester.Actual(c.Scheduler().Now().Sub(start) >= 200*time.Millisecond), jester.Expect(true))
						_ = c.Next()
					})
					return nil
				}),
				jester.Test("runs after the deferred continuation", func(c *jester.Context, r *jester.CheckResult) error {
					c.Set("order", append(c.Value("order").([]string), "second"))
					err := r.Check("order", jester.Actual(c.Value("order")), jester.Expect([]string{"first", "second"}))
					_ = c.Next()
					return err
				}),
			},
			Teardown: func(c *jester.Context) error {
				c.Scheduler().Post(func() {
					_ = c.Next()
				})
				return nil
			},
		}),
		jester.Inline(jester.ContextDeclaration{
			Tests: []jester.TestCase{
				jester.Test("inline tests run in the suite's own context", func(c *jester.Context, r *jester.CheckResult) error {
					return r.Check("context name", jester.Actual(c.Name()), jester.Expect(ContextsSuite))
				}),
			},
		}),
	}
}

// Deep equality on the values used throughout the checks.
func Equality() jester.SuiteDeclaration {
	return jester.SuiteDeclaration{
		jester.Inline(jester.ContextDeclaration{
			Tests: []jester.TestCase{
				jester.Test("is reflexive", func(c *jester.Context, r *jester.CheckResult) error {
					for _, v := range []any{42, "foo", []int{1, 2, 3}, map[string]int{"a": 1, "b": 2}} {
						if err := r.Check("equals itself", jester.Actual(v), jester.Expect(v)); err != nil {
							return err
						}
					}
					return nil
				}),
				jester.Test("compares numbers by value", func(c *jester.Context, r *jester.CheckResult) error {
					return r.Check("int against float", jester.Actual(1), jester.Expect(1.0))
				}),
				jester.Test("distinguishes order", func(c *jester.Context, r *jester.CheckResult) error {
					return r.Check("permuted slice", jester.Actual(jester.DeepEqual([]int{1, 2, 3}, []int{1, 3, 2})), jester.Expect(false))
				}),
				jester.Test("keeps null apart from zero values", func(c *jester.Context, r *jester.CheckResult) error {
					for _, v := range []any{0, "", false} {
						if err := r.Check("null", jester.Actual(jester.DeepEqual(nil, v)), jester.Expect(false)); err != nil {
							return err
						}
					}
					return nil
				}),
			},
		}),
	}
}
