package jestererror

import "fmt"

// PanicError carries a value recovered from a panicking phase along with the
// stack at the point of recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func NewPanicError(value any, stack []byte) PanicError {
	return PanicError{
		Value: value,
		Stack: stack,
	}
}

func (pe PanicError) Error() string {
	return fmt.Sprintf("panic occurred: %v", pe.Value)
}

// Unwrap exposes a panicked error value, e.g. panic(fmt.Errorf(...)).
func (pe PanicError) Unwrap() error {
	if err, ok := pe.Value.(error); ok {
		return err
	}
	return nil
}
