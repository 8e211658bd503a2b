package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"jester/internal/runner"
	"jester/pkg/jester/core"
	"jester/pkg/jester/utils"
)

type ListCmd struct {
	Json     bool     `short:"j" help:"Output in JSON format"`
	Strategy []string `short:"s" help:"Only list contexts using these strategies (sync, async)"`
}

type listedContext struct {
	name     string
	strategy core.StrategyKind
	tests    []core.TestCase
}

func (cmd *ListCmd) Run(program core.ProgramContext, out io.Writer) error {
	log := program.Logger()
	log.Info("Listing suites")

	strategyFilter := utils.NewStringFilterFromSlice(cmd.Strategy)
	tree := utils.NewPathTree()

	for _, suite := range program.Suites() {
		parsed, err := runner.ParseSuite(suite.Description, suite.Declaration)
		if err != nil {
			return fmt.Errorf("failed to parse suite '%s': %w", suite.Description, err)
		}

		var contexts []listedContext
		for _, nc := range parsed.Contexts {
			contexts = append(contexts, listedContext{
				name:     nc.Name,
				strategy: core.ParseStrategy(nc.Declaration.Strategy),
				tests:    nc.Declaration.Tests,
			})
		}
		if parsed.RunsFlat() {
			contexts = append(contexts, listedContext{
				name:     parsed.Description,
				strategy: core.ParseStrategy(parsed.Flat.Strategy),
				tests:    parsed.Flat.Tests,
			})
		}

		printedSuite := false
		for _, lc := range contexts {
			if !strategyFilter.Match(lc.strategy.String()) {
				log.Tracef("Skipping context '%s' because its strategy is not selected", lc.name)
				continue
			}

			if cmd.Json {
				tree.AddSegments(parsed.Description, lc.name)
				for _, tc := range lc.tests {
					tree.AddSegments(parsed.Description, lc.name, tc.What)
				}
				continue
			}

			if !printedSuite {
				fmt.Fprintln(out, parsed.Description)
				printedSuite = true
			}
			fmt.Fprintf(out, "  %s (%s)\n", lc.name, lc.strategy)
			for _, tc := range lc.tests {
				fmt.Fprintf(out, "    - %s\n", tc.What)
			}
		}
	}

	if cmd.Json {
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal suites to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	}

	return nil
}
