package core

import (
	"errors"
	"fmt"
)

// UsageError signals a broken test file rather than a broken system under
// test: a malformed declaration, a malformed check, or a continuation that
// was called more than once.
type UsageError struct {
	// Operation that detected the misuse, e.g. "check" or "next".
	Op  string
	Msg string
}

func NewUsageError(op string, format string, a ...any) *UsageError {
	return &UsageError{
		Op:  op,
		Msg: fmt.Sprintf(format, a...),
	}
}

func (ue *UsageError) Error() string {
	return fmt.Sprintf("usage error in %s: %s", ue.Op, ue.Msg)
}

// Returns whether err is, or wraps, a *UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
