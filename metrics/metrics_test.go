/*
NAME
  metrics_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package metrics

import (
	"errors"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ProcessError, cause, "kernel failed")
	if got := errors.Unwrap(err); got == nil {
		t.Fatal("Unwrap() = nil, want non-nil")
	}
}

func TestNewHasNoCause(t *testing.T) {
	err := New(UnsupportedInput, "no readable frames")
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
	if err.Kind != UnsupportedInput {
		t.Errorf("Kind = %v, want UnsupportedInput", err.Kind)
	}
}

func TestKindString(t *testing.T) {
	if got := MalformedInput.String(); got != "MalformedInput" {
		t.Errorf("String() = %q, want MalformedInput", got)
	}
}
