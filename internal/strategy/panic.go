package strategy

import (
	"runtime/debug"

	"jester/internal/jestererror"
)

// Runs f and converts a panic into a jestererror.PanicError.
func runCatchPanic(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = jestererror.NewPanicError(r, debug.Stack())
		}
	}()

	return f()
}
