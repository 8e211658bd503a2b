package strategy

import (
	"errors"
	"fmt"
	"testing"

	"jester/internal/jestererror"
)

func TestRunCatchPanic(t *testing.T) {
	t.Run("no panic", func(t *testing.T) {
		err := runCatchPanic(func() error { return nil })
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("error", func(t *testing.T) {
		err := runCatchPanic(func() error { return fmt.Errorf("test error") })
		if err == nil {
			t.Fatalf("expected an error, got nil")
		}

		if _, ok := err.(jestererror.PanicError); ok {
			t.Errorf("expected non-panic error, got panic error")
		}

		if err.Error() != "test error" {
			t.Errorf("expected test error, got %v", err)
		}
	})

	t.Run("panic", func(t *testing.T) {
		err := runCatchPanic(func() error {
			panic("test panic")
		})
		if err == nil {
			t.Fatalf("expected an error, got nil")
		}

		pe, ok := err.(jestererror.PanicError)
		if !ok {
			t.Fatalf("expected panic error, got non-panic error")
		}

		if pe.Error() != "panic occurred: test panic" {
			t.Errorf("expected panic error, got %v", pe)
		}

		if len(pe.Stack) == 0 {
			t.Errorf("expected a stack trace")
		}
	})

	t.Run("panic with error", func(t *testing.T) {
		inner := errors.New("inner")
		err := runCatchPanic(func() error {
			panic(inner)
		})

		if !errors.Is(err, inner) {
			t.Errorf("expected panic error to unwrap to %v, got %v", inner, err)
		}
	})
}
