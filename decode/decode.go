/*
NAME
  decode.go

DESCRIPTION
  decode.go defines the decoder contract every video source implements,
  per spec §6: a single-threaded, producer-owned sequence of frames plus
  the metadata needed to validate and compare them.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package decode defines the minimal decoder contract vqmetrics' engine
// consumes, and a raw-planar-buffer reference implementation suitable for
// tests and for ingesting frames handed across the C ABI.
package decode

import (
	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/pixel"
)

// Rational is a ratio of two unsigned integers, used for frame rate and
// other non-integer metadata that should not be stored as a float.
type Rational struct {
	Num, Den uint64
}

// AsF64 returns the rational as a float64, or 0 if Den is zero.
func (r Rational) AsF64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// VideoDetails describes a decoded video's static properties: dimensions,
// bit depth, chroma layout, frame rate, and any luma padding the source
// container carries but which is not part of the visible picture.
type VideoDetails struct {
	Width, Height        int
	BitDepth             int
	ChromaSampling       frame.Sampling
	ChromaSamplePosition frame.SamplePosition
	TimeBase             Rational
	LumaPadding          int
}

// DefaultVideoDetails matches the reference decoder's fallback when a
// source provides no explicit metadata: 640x480, 8-bit, 4:2:0, unknown
// chroma position, 30fps.
func DefaultVideoDetails() VideoDetails {
	return VideoDetails{
		Width:                640,
		Height:               480,
		BitDepth:             8,
		ChromaSampling:       frame.Sampling420,
		ChromaSamplePosition: frame.PositionUnknown,
		TimeBase:             Rational{Num: 30, Den: 1},
	}
}

// Decoder is the contract vqmetrics' concurrency core drives: a
// single-threaded, producer-owned stream of frames. ReadFrame returns
// (nil, nil) at end of stream, matching Rust's Option<Frame<T>> idiom
// without relying on a sentinel error.
type Decoder[T pixel.Sample] interface {
	// VideoDetails reports the decoded video's static properties.
	VideoDetails() VideoDetails
	// BitDepth reports the sample bit depth; equal to
	// VideoDetails().BitDepth for well-behaved decoders, but kept as its
	// own method since some containers only expose it post-first-frame.
	BitDepth() int
	// ReadFrame returns the next frame, or (nil, nil) at end of stream.
	ReadFrame() (*frame.Frame[T], error)
}
