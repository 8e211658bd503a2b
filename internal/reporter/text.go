package reporter

import (
	"fmt"
	"strings"

	"jester/pkg/jester/core"

	"github.com/fatih/color"
)

const indent = "  "

// Renders a report as nested text: suite, context, test, check. The output
// only depends on the report, so rendering the same report twice yields the
// same text.
//
// Example:
//
//	Suite: Jester
//	  Context: Tests with context A (sync)
//	    [PASS] setup is shared with the test
//	      ok   prop: "value1"
//	Tests: 1; Checks: 1; Failures: 0; Errors: 0
func RenderText(rep Report) string {
	var b strings.Builder

	for _, suite := range rep.Suites {
		fmt.Fprintf(&b, "Suite: %s%s\n", suite.Description, unfinished(suite.Finished))
		for _, ctx := range suite.Contexts {
			renderContext(&b, ctx)
		}
	}

	fmt.Fprintf(&b, "Tests: %d; Checks: %d; Failures: %d; Errors: %d\n",
		rep.Totals.Tests,
		rep.Totals.Checks,
		rep.Totals.Failures,
		rep.Totals.Errors,
	)

	return b.String()
}

func renderContext(b *strings.Builder, ctx ContextRecord) {
	fmt.Fprintf(b, "%sContext: %s (%s)%s\n", indent, ctx.Name, ctx.Strategy, unfinished(ctx.Finished))

	renderPhaseErrors(b, ctx.Errors, core.PhaseSetup.String())

	for _, test := range ctx.Tests {
		line := fmt.Sprintf("%s[%s] %s", strings.Repeat(indent, 2), test.Status.ColorString(), test.What)
		if test.Reason != "" {
			line += fmt.Sprintf(" (%s)", test.Reason)
		}
		b.WriteString(line + "\n")

		for _, check := range test.Checks {
			renderCheck(b, check)
		}
	}

	renderPhaseErrors(b, ctx.Errors, core.PhaseTeardown.String())
}

func renderPhaseErrors(b *strings.Builder, errs []PhaseErrorRecord, phase string) {
	for _, e := range errs {
		if e.Phase != phase {
			continue
		}
		fmt.Fprintf(b, "%s%s %s\n", strings.Repeat(indent, 2), color.RedString("ERROR"), e.Message)
	}
}

func renderCheck(b *strings.Builder, check CheckRecord) {
	prefix := strings.Repeat(indent, 3)
	if check.Passed {
		fmt.Fprintf(b, "%s%s   %s: %s\n", prefix, color.GreenString("ok"), check.Description, check.Actual)
		return
	}

	if check.Anomaly {
		fmt.Fprintf(b, "%s%s %s: %s\n", prefix, color.RedString("FAIL"), check.Description, check.Actual)
		return
	}

	fmt.Fprintf(b, "%s%s %s: expected %s, got %s\n",
		prefix,
		color.RedString("FAIL"),
		check.Description,
		check.Expected,
		check.Actual,
	)
}

func unfinished(finished bool) string {
	if finished {
		return ""
	}
	return " (not finished)"
}
