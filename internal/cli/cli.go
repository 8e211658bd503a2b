// Package cli holds the launcher's command tree. Commands receive the program
// through kong bindings and write their output to the bound io.Writer.
package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

type GlobalOpts struct {
	Verbosity   log.Level `short:"v" help:"Set log level" default:"info"`
	AzureDevops bool      `short:"a" help:"Enable Azure DevOps integration" env:"TF_BUILD"`
	Config      string    `short:"c" help:"Optional YAML configuration file supplying defaults" type:"path"`
}

type cli struct {
	Global GlobalOpts `embed:""`
	List   ListCmd    `cmd:"" help:"List registered suites, contexts and tests"`
	Run    RunCmd     `cmd:"" help:"Run the registered suites"`
}

// ExitStatusError is returned by commands that completed but must end the
// process with a non-zero status.
type ExitStatusError struct {
	Status int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Status)
}

// Parses args into the command tree. The returned options are only valid when
// err is nil.
func Parse(name string, args []string, options ...kong.Option) (*kong.Context, *GlobalOpts, error) {
	c := &cli{}

	options = append([]kong.Option{
		kong.Name(name),
		kong.Description(fmt.Sprintf("Test launcher for the '%s' suites.", name)),
	}, options...)

	parser, err := kong.New(c, options...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create command line parser: %w", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, nil, err
	}

	return ctx, &c.Global, nil
}
