package suite

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"jester/internal/cli"
	"jester/pkg/jester/core"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkTest(what string, actual, expect any) core.TestCase {
	return core.TestCase{
		What: what,
		How: func(c *core.Context, r *core.CheckResult) error {
			return r.Check(what, core.Actual(actual), core.Expect(expect))
		},
	}
}

func newProgram(t *testing.T) JesterProgram {
	t.Helper()
	color.NoColor = true

	p := CreateProgram("test")
	p.AddSuite("Passing", core.SuiteDeclaration{
		core.NamedContext{Name: "sync", Declaration: core.ContextDeclaration{
			Tests: []core.TestCase{checkTest("number", 42, 42)},
		}},
		core.NamedContext{Name: "async", Declaration: core.ContextDeclaration{
			Strategy: "async",
			Tests: []core.TestCase{{
				What: "continues",
				How: func(c *core.Context, r *core.CheckResult) error {
					_ = r.Check("continues", core.Actual(true), core.Expect(true))
					return c.Next()
				},
			}},
		}},
	})
	p.AddSuite("Failing", core.SuiteDeclaration{
		core.TestEntry{Declaration: core.ContextDeclaration{
			Tests: []core.TestCase{checkTest("answer", 54, 42)},
		}},
	})

	return p
}

func TestCreateProgram(t *testing.T) {
	p := newProgram(t)

	assert.Equal(t, "jester-test", p.Name())
	require.Len(t, p.Suites(), 2)
	assert.Equal(t, "Passing", p.Suites()[0].Description)
	assert.NotNil(t, p.Logger())
}

func TestExecuteRunSelected(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	err := p.Execute([]string{"-v", "panic", "run", "--select", "Passing"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Context: sync (sync)")
	assert.Contains(t, out.String(), "Context: async (async)")
	assert.NotContains(t, out.String(), "Failing")
	assert.Contains(t, out.String(), "TEST RESULT: OK.")
}

func TestExecuteRunFailures(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	err := p.Execute([]string{"-v", "panic", "run", "--format", "table"}, &out)

	var exitErr *cli.ExitStatusError
	require.True(t, errors.As(err, &exitErr), "expected an exit status error, got %v", err)
	assert.Equal(t, 1, exitErr.Status)
	assert.Contains(t, out.String(), "TOTAL")
	assert.Contains(t, out.String(), "TEST RESULT: FAILED.")
}

func TestExecuteRunWritesOutput(t *testing.T) {
	p := newProgram(t)
	path := filepath.Join(t.TempDir(), "report.json")

	var out bytes.Buffer
	err := p.Execute([]string{"-v", "panic", "run", "--select", "Passing/sync", "--format", "json", "--output", path}, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, map[string]any{"tests": 1.0, "checks": 1.0, "failures": 0.0, "errors": 0.0}, report["totals"])
}

func TestExecuteRunConfigFile(t *testing.T) {
	p := newProgram(t)
	path := filepath.Join(t.TempDir(), "jester.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: tree\nselect:\n  - Passing\n"), 0o644))

	var out bytes.Buffer
	err := p.Execute([]string{"-v", "panic", "-c", path, "run"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1. Passing")
}

func TestExecuteRunBadFormat(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	err := p.Execute([]string{"-v", "panic", "run", "--format", "xml"}, &out)
	assert.ErrorContains(t, err, "unknown report format")
}

func TestExecuteRunPublishNeedsKey(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	err := p.Execute([]string{"-v", "panic", "run", "--publish", "ci@host/report.txt"}, &out)
	assert.ErrorContains(t, err, "--key")
}

func TestExecuteList(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	require.NoError(t, p.Execute([]string{"-v", "panic", "list"}, &out))
	assert.Equal(t, ""+
		"Passing\n"+
		"  sync (sync)\n"+
		"    - number\n"+
		"  async (async)\n"+
		"    - continues\n"+
		"Failing\n"+
		"  Failing (sync)\n"+
		"    - answer\n",
		out.String(),
	)
}

func TestExecuteListJSON(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	require.NoError(t, p.Execute([]string{"-v", "panic", "list", "--json", "--strategy", "async"}, &out))
	assert.JSONEq(t, `{"Passing":{"async":{"continues":{}}}}`, out.String())
}

func TestExecuteUnknownCommand(t *testing.T) {
	p := newProgram(t)

	var out bytes.Buffer
	assert.Error(t, p.Execute([]string{"frobnicate"}, &out))
}
