// Package suite is the launcher: a program collects suite declarations and
// exposes them through the run and list commands.
package suite

import (
	"fmt"
	"io"
	"os"
	"slices"

	"jester/internal/cli"
	"jester/internal/runner"
	"jester/pkg/jester/core"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

type JesterProgram struct {
	name   string
	suites []core.RegisteredSuite
	Log    *logrus.Logger
}

func CreateProgram(name string) JesterProgram {
	name = fmt.Sprintf("jester-%s", name)
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors: true,
	})

	return JesterProgram{
		name:   name,
		suites: make([]core.RegisteredSuite, 0),
		Log:    logger,
	}
}

// Adds a suite to the program. Malformed declarations and duplicate
// descriptions are fatal.
func (p *JesterProgram) AddSuite(description string, decl core.SuiteDeclaration) {
	if slices.ContainsFunc(p.suites, func(s core.RegisteredSuite) bool {
		return s.Description == description
	}) {
		p.Log.Fatalf("Suite '%s' already exists", description)
	}

	if _, err := runner.ParseSuite(description, decl); err != nil {
		p.Log.WithError(err).Fatalf("Suite '%s' is malformed", description)
	}

	p.Log.Debugf("Registering suite '%s'", description)
	p.suites = append(p.suites, core.RegisteredSuite{Description: description, Declaration: decl})
}

// Parses the command line and runs the selected command, then exits the
// process with the resulting status.
func (p *JesterProgram) Run() {
	args := os.Args[1:]
	// Force display help if no arguments are provided
	if len(args) == 0 {
		args = []string{"--help"}
	}

	p.reportExitStatus(p.Execute(args, os.Stdout))
}

// Parses args and runs the selected command, writing command output to out.
func (p *JesterProgram) Execute(args []string, out io.Writer, options ...kong.Option) error {
	ctx, global, err := cli.Parse(p.name, args, options...)
	if err != nil {
		return err
	}

	p.Log.SetLevel(global.Verbosity)
	p.Log.Debugf("Running '%s' - %d suites collected.", p.name, len(p.suites))

	ctx.BindTo(p, (*core.ProgramContext)(nil))
	ctx.BindTo(out, (*io.Writer)(nil))
	ctx.Bind(global)

	return ctx.Run()
}

func (p *JesterProgram) Name() string {
	return p.name
}

func (p *JesterProgram) Suites() []core.RegisteredSuite {
	return p.suites
}

func (p *JesterProgram) Logger() *logrus.Logger {
	return p.Log
}
