package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"
	"github.com/pkg/errors"
)

// Renders the report as a tree rooted at the run ID. Tests and checks are
// numbered, since the tree merges siblings with identical labels.
func RenderTree(w io.Writer, rep Report) error {
	root := gtree.NewRoot(fmt.Sprintf("run %s", rep.RunID))

	for i, suite := range rep.Suites {
		suiteNode := root.Add(fmt.Sprintf("%d. %s%s", i+1, label(suite.Description), unfinished(suite.Finished)))

		for _, ctx := range suite.Contexts {
			ctxNode := suiteNode.Add(fmt.Sprintf("%s [%s]%s", label(ctx.Name), ctx.Strategy, unfinished(ctx.Finished)))

			for _, e := range ctx.Errors {
				ctxNode.Add(fmt.Sprintf("ERROR %s", label(e.Message)))
			}

			for j, test := range ctx.Tests {
				testNode := ctxNode.Add(fmt.Sprintf("%d. %s %s", j+1, test.Status, label(test.What)))

				for k, check := range test.Checks {
					status := "ok"
					if !check.Passed {
						status = "FAIL"
					}
					testNode.Add(fmt.Sprintf("%d. %s %s", k+1, status, label(check.Description)))
				}
			}
		}
	}

	if err := gtree.OutputFromRoot(w, root); err != nil {
		return errors.Wrap(err, "failed to render report tree")
	}

	return nil
}

// Tree nodes are single line.
func label(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "(unnamed)"
	}
	return s
}
