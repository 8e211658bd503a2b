package reporter

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Renders one row per context with its counts, and the run totals as footer.
func RenderTable(rep Report) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("Jester run %s", rep.RunID)

	t.AppendHeader(table.Row{"SUITE", "CONTEXT", "STRATEGY", "TESTS", "CHECKS", "FAILURES", "ERRORS", "STATUS"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "SUITE", AutoMerge: true, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "CONTEXT", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "TESTS", Align: text.AlignRight},
		{Name: "CHECKS", Align: text.AlignRight},
		{Name: "FAILURES", Align: text.AlignRight},
		{Name: "ERRORS", Align: text.AlignRight},
	})

	for _, suite := range rep.Suites {
		for _, ctx := range suite.Contexts {
			counts := ctx.Counts()
			t.AppendRow(table.Row{
				suite.Description,
				ctx.Name,
				ctx.Strategy,
				counts.Tests,
				counts.Checks,
				counts.Failures,
				counts.Errors,
				contextStatus(ctx, counts),
			})
		}
	}

	t.AppendFooter(table.Row{
		"",
		"TOTAL",
		"",
		rep.Totals.Tests,
		rep.Totals.Checks,
		rep.Totals.Failures,
		rep.Totals.Errors,
		NewSummary(rep).Status().String(),
	})

	return t.Render()
}

func contextStatus(ctx ContextRecord, counts Totals) string {
	switch {
	case !ctx.Finished:
		return "UNFINISHED"
	case counts.Errors > 0:
		return SummaryStatusError.String()
	case counts.Failures > 0:
		return SummaryStatusFailed.String()
	default:
		return SummaryStatusOk.String()
	}
}
