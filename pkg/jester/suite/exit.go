package suite

import (
	"errors"
	"os"

	"jester/internal/cli"
)

// Exit the program and report the exit status
func (p *JesterProgram) reportExitStatus(err error) {
	if err == nil {
		p.Log.Infof("Program '%s' run completed", p.name)
		os.Exit(0)
	}

	var exitErr *cli.ExitStatusError
	if errors.As(err, &exitErr) {
		p.Log.Errorf("Program '%s' finished with failures", p.name)
		os.Exit(exitErr.Status)
	}

	p.Log.WithError(err).Fatalf("Program '%s' failed", p.name)
}
