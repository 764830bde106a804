/*
NAME
  plane.go

DESCRIPTION
  plane.go defines the rectangular sample grid that backs each of a
  frame's three planes, and the realignment filter used to fix up
  vertically-offset chroma before it is fed to a metric kernel.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package frame

import (
	"fmt"

	"github.com/ausocean/vqmetrics/pixel"
)

// Plane is a rectangular grid of samples with a possibly-padded stride.
// Width and height are logical pixel extents; Stride is the number of
// samples per row in Data, which may exceed Width for alignment.
type Plane[T pixel.Sample] struct {
	Width, Height int
	Stride        int
	Data          []T // len(Data) >= Stride*Height
}

// NewPlane allocates a plane with stride equal to width (no padding).
func NewPlane[T pixel.Sample](width, height int) *Plane[T] {
	return &Plane[T]{
		Width:  width,
		Height: height,
		Stride: width,
		Data:   make([]T, width*height),
	}
}

// At returns the sample at (x, y).
func (p *Plane[T]) At(x, y int) T { return p.Data[y*p.Stride+x] }

// Set assigns the sample at (x, y).
func (p *Plane[T]) Set(x, y int, v T) { p.Data[y*p.Stride+x] = v }

// Row returns the samples of row y, width elements long (ignoring any
// stride padding beyond Width).
func (p *Plane[T]) Row(y int) []T {
	start := y * p.Stride
	return p.Data[start : start+p.Width]
}

// CanCompare reports whether two planes have equal width and height.
// Strides may differ: comparability is about logical geometry only.
func (p *Plane[T]) CanCompare(other *Plane[T]) error {
	if p.Width != other.Width || p.Height != other.Height {
		return fmt.Errorf("plane dimensions do not match: %dx%d vs %dx%d",
			p.Width, p.Height, other.Width, other.Height)
	}
	return nil
}

// chromaRealignTaps is the 6-tap filter [4, -17, 114, 35, -9, 1]/128 used
// to resample a vertically-offset chroma row onto the luma sampling grid.
var chromaRealignTaps = [6]int32{4, -17, 114, 35, -9, 1}

// ApplyChromaRealignment resamples a chroma plane that was captured with
// SamplePosition Vertical, producing a new plane whose samples are
// horizontally co-located with luma, per spec §4.1. Interpolated and
// Bilateral positions are passed through unchanged (with a known, but
// unquantified, accuracy cost); Colocated needs no adjustment.
func ApplyChromaRealignment[T pixel.Sample](src *Plane[T], pos SamplePosition, bitDepth int) *Plane[T] {
	if pos != PositionVertical {
		return src
	}

	width, height := src.Width, src.Height
	out := NewPlane[T](width, height)
	max := int32(pixel.MaxForDepth(bitDepth))

	tap := func(row []T, x int) int32 {
		if x < 0 {
			x = 0
		}
		return pixel.ToInt32(row[x])
	}

	for y := 0; y < height; y++ {
		in := src.Row(y)
		outRow := out.Data[y*out.Stride : y*out.Stride+width]
		for x := 0; x < width; x++ {
			var acc int32
			for k := 0; k < 6; k++ {
				// Tap k sits at offset k-2 from x (taps indexed 0..5 map to
				// x-2..x+3). Left of the window clamps to index 0 via
				// saturating subtraction; right of the window clamps to the
				// last valid index.
				idx := x + k - 2
				if idx < 0 {
					idx = 0
				}
				if idx > width-1 {
					idx = width - 1
				}
				acc += chromaRealignTaps[k] * tap(in, idx)
			}
			acc = (acc + 64) >> 7
			outRow[x] = pixel.FromInt32[T](acc, max)
		}
	}
	return out
}
