/*
NAME
  frame.go

DESCRIPTION
  frame.go defines the planar Y/U/V frame container that every metric
  kernel consumes, along with the comparability checks the driver runs
  before computing a metric across a pair of frames.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package frame

import (
	"fmt"

	"github.com/ausocean/vqmetrics/pixel"
)

// Frame is an ordered (Y, U, V) triple of planes plus the bit depth and
// chroma sampling that describe how those planes relate to each other.
type Frame[T pixel.Sample] struct {
	Planes    [3]*Plane[T] // 0=Y, 1=U, 2=V
	BitDepth  int
	ChromaFmt Sampling
}

// NewFrame allocates a frame with planes sized according to the given
// luma dimensions and chroma sampling.
func NewFrame[T pixel.Sample](lumaWidth, lumaHeight int, chromaFmt Sampling, bitDepth int) *Frame[T] {
	y := NewPlane[T](lumaWidth, lumaHeight)
	cw, ch := chromaFmt.ChromaDims(lumaWidth, lumaHeight)
	u := NewPlane[T](cw, ch)
	v := NewPlane[T](cw, ch)
	return &Frame[T]{
		Planes:    [3]*Plane[T]{y, u, v},
		BitDepth:  bitDepth,
		ChromaFmt: chromaFmt,
	}
}

// Y, U and V are convenience accessors for the three planes.
func (f *Frame[T]) Y() *Plane[T] { return f.Planes[0] }
func (f *Frame[T]) U() *Plane[T] { return f.Planes[1] }
func (f *Frame[T]) V() *Plane[T] { return f.Planes[2] }

// CanCompare reports whether two frames may be compared by a metric
// kernel: equal bit depths, equal chroma samplings, and all three plane
// pairs comparable.
func (f *Frame[T]) CanCompare(other *Frame[T]) error {
	if f.BitDepth != other.BitDepth {
		return fmt.Errorf("bit depths do not match: %d vs %d", f.BitDepth, other.BitDepth)
	}
	if f.ChromaFmt != other.ChromaFmt {
		return fmt.Errorf("chroma samplings do not match: %s vs %s", f.ChromaFmt, other.ChromaFmt)
	}
	for i := range f.Planes {
		if err := f.Planes[i].CanCompare(other.Planes[i]); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the frame invariants from spec §3: chroma dimensions
// match the declared sampling ratio, and all samples fit the declared bit
// depth.
func (f *Frame[T]) Validate() error {
	max := uint32(pixel.MaxForDepth(f.BitDepth))
	for i, p := range f.Planes {
		for y := 0; y < p.Height; y++ {
			for _, s := range p.Row(y) {
				if pixel.ToUint32(s) > max {
					return fmt.Errorf("plane %d sample %d exceeds %d-bit maximum %d", i, s, f.BitDepth, max)
				}
			}
		}
	}
	cw, ch := f.ChromaFmt.ChromaDims(f.Planes[0].Width, f.Planes[0].Height)
	if f.ChromaFmt == Sampling400 {
		if f.Planes[1].Width != 0 || f.Planes[2].Width != 0 {
			return fmt.Errorf("monochrome frame must have empty chroma planes")
		}
		return nil
	}
	if f.Planes[1].Width != cw || f.Planes[1].Height != ch {
		return fmt.Errorf("U plane %dx%d does not match expected %dx%d for %s",
			f.Planes[1].Width, f.Planes[1].Height, cw, ch, f.ChromaFmt)
	}
	if f.Planes[2].Width != cw || f.Planes[2].Height != ch {
		return fmt.Errorf("V plane %dx%d does not match expected %dx%d for %s",
			f.Planes[2].Width, f.Planes[2].Height, cw, ch, f.ChromaFmt)
	}
	return nil
}

// PlanarWeightedAverage combines three per-plane values into the
// chroma-weighted planar average `(y + w*u + w*v) / (1 + 2w)` described
// in spec §3. For monochrome (w=0) this reduces to y.
func PlanarWeightedAverage(y, u, v, w float64) float64 {
	return (y + w*(u+v)) / (1 + 2*w)
}
