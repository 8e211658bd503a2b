package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"

	"jester/internal/config"
	"jester/internal/devops"
	"jester/internal/eventloop"
	"jester/internal/publish"
	"jester/internal/reporter"
	"jester/internal/runner"
	"jester/pkg/jester/core"
)

type RunCmd struct {
	Select   []string `short:"s" help:"Only run the given SUITE or SUITE/CONTEXT paths"`
	Format   string   `short:"f" help:"Report format: text, tree, table, json or yaml"`
	Output   string   `short:"o" help:"Also write the report, without colours, to this file" type:"path"`
	Publish  string   `short:"p" help:"Upload the report over SFTP to user@host[:port]/path"`
	Key      string   `short:"k" help:"SSH private key used with --publish" type:"path"`
	RealTime bool     `help:"Use the wall clock instead of the virtual clock for deferred work"`
}

// Fills every option left unset on the command line from cfg.
func (cmd *RunCmd) applyConfig(cfg config.Config) {
	if len(cmd.Select) == 0 {
		cmd.Select = cfg.Select
	}
	if cmd.Format == "" {
		cmd.Format = cfg.Format
	}
	if cmd.Output == "" {
		cmd.Output = cfg.Output
	}
	if cmd.Publish == "" {
		cmd.Publish = cfg.Publish.Target
	}
	if cmd.Key == "" {
		cmd.Key = cfg.Publish.KeyPath
	}
	cmd.RealTime = cmd.RealTime || cfg.RealTime
}

func (cmd *RunCmd) Run(program core.ProgramContext, global *GlobalOpts, out io.Writer) error {
	log := program.Logger()

	cfg, err := config.Load(global.Config)
	if err != nil {
		return err
	}
	cmd.applyConfig(cfg)

	format, err := reporter.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	var target publish.Target
	if cmd.Publish != "" {
		target, err = publish.ParseTarget(cmd.Publish)
		if err != nil {
			return err
		}
		if cmd.Key == "" {
			return errors.New("--publish requires --key")
		}
	}

	rep := reporter.New(reporter.WithLogger(log))
	var events core.Reporter = rep
	if global.AzureDevops {
		events = devops.NewReporter(rep, devops.NewPrinter(out))
	}

	loopOpts := []eventloop.Option{eventloop.WithLogger(log)}
	if cmd.RealTime {
		loopOpts = append(loopOpts, eventloop.WithRealTime())
	}

	r := runner.New(events,
		runner.WithLoop(eventloop.New(loopOpts...)),
		runner.WithLogger(log),
		runner.WithSelection(cmd.Select),
	)

	// A stalled async context keeps the loop alive; an interrupt ends the
	// run and still prints what was collected.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("Running %d suites of '%s'", len(program.Suites()), program.Name())

	var runErrs []error
	for _, suite := range program.Suites() {
		if err := r.Run(ctx, suite.Description, suite.Declaration); err != nil {
			log.WithError(err).Errorf("Suite '%s' reported errors", suite.Description)
			runErrs = append(runErrs, err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	report := rep.Report()
	if err := reporter.PrintReport(out, report, format); err != nil {
		return err
	}

	if cmd.Output != "" {
		if err := reporter.WriteFile(cmd.Output, report, format); err != nil {
			return err
		}
		log.Infof("Report written to '%s'", cmd.Output)
	}

	if cmd.Publish != "" {
		data, err := reporter.RenderPlain(report, format)
		if err != nil {
			return err
		}
		if err := publish.Upload(target, cmd.Key, cfg.Publish.Timeout, data); err != nil {
			return err
		}
	}

	if len(runErrs) != 0 {
		return errors.Join(runErrs...)
	}

	if status := reporter.ExitStatus(rep); status != 0 {
		return &ExitStatusError{Status: status}
	}

	return nil
}
