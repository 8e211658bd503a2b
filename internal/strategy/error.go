package strategy

import (
	"fmt"

	"jester/pkg/jester/core"
)

type contextError struct {
	err     error
	context string
}

func (ce *contextError) Error() string {
	return fmt.Sprintf("error in context '%s': %v", ce.context, ce.err)
}

func (ce *contextError) Unwrap() error {
	return ce.err
}

type setupError struct {
	contextError
}

func newSetupError(context string, err error) *setupError {
	return &setupError{
		contextError: contextError{
			err:     err,
			context: context,
		},
	}
}

func (se *setupError) Error() string {
	return fmt.Sprintf("setup error in context '%s': %v", se.context, se.err)
}

type teardownError struct {
	contextError
}

func newTeardownError(context string, err error) *teardownError {
	return &teardownError{
		contextError: contextError{
			err:     err,
			context: context,
		},
	}
}

func (te *teardownError) Error() string {
	return fmt.Sprintf("teardown error in context '%s': %v", te.context, te.err)
}

func newPhaseError(phase core.Phase, context string, err error) error {
	switch phase {
	case core.PhaseSetup:
		return newSetupError(context, err)
	case core.PhaseTeardown:
		return newTeardownError(context, err)
	default:
		return &contextError{err: err, context: context}
	}
}
