/*
NAME
  metrics.go

DESCRIPTION
  metrics.go defines the result type shared by every planar metric, and
  the error taxonomy surfaced by the driver and the concurrency core.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package metrics holds the types shared across all of vqmetrics' quality
// metrics: the planar result shape returned by PSNR/APSNR/SSIM/MS-SSIM/
// PSNR-HVS, and the error taxonomy from spec §7.
package metrics

import (
	"fmt"

	"github.com/pkg/errors"
)

// Planar is the per-plane result produced by every metric except
// CIEDE2000 (which is a single scalar): a score for each of Y, U, V, plus
// a chroma-weighted average. For monochrome video, U and V are zero and
// Avg equals Y.
type Planar struct {
	Y, U, V, Avg float64
}

// Kind identifies the category of error the driver or concurrency core
// encountered, per spec §7. It is a taxonomy, not a type hierarchy: all
// error kinds are represented by the single Error type below.
type Kind int

const (
	// MalformedInput means a decoder returned a framing or header error
	// before any frames were emitted.
	MalformedInput Kind = iota
	// UnsupportedInput means bit depth > 16, zero readable frames, or
	// unknown chroma sampling.
	UnsupportedInput
	// InputMismatch means bit depth, chroma sampling, or plane dimensions
	// disagree between a frame pair or decoder pair.
	InputMismatch
	// SendError means the concurrency core's producer could not hand a
	// frame pair to a worker.
	SendError
	// ProcessError means a worker's kernel invocation failed on a specific
	// frame pair.
	ProcessError
	// VideoError is a catch-all for concurrency-core failures that are not
	// more specifically a SendError or ProcessError.
	VideoError
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case UnsupportedInput:
		return "UnsupportedInput"
	case InputMismatch:
		return "InputMismatch"
	case SendError:
		return "SendError"
	case ProcessError:
		return "ProcessError"
	case VideoError:
		return "VideoError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error record returned on any failure path, per
// spec §7: "on failure, a single error record."
type Error struct {
	Kind   Kind
	Reason string
	// Cause, when non-nil, is the underlying error this Error wraps; used
	// by the concurrency core to preserve a worker's kernel error.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an Error with no wrapped cause.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Wrap constructs an Error that preserves cause as its causal chain, using
// pkg/errors so the chain survives a trip across a worker goroutine
// boundary into the driver.
func Wrap(kind Kind, cause error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason, Cause: errors.Wrap(cause, reason)}
}
