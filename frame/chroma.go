/*
NAME
  chroma.go

DESCRIPTION
  chroma.go defines chroma subsampling ratios, the chroma-plane dimension
  derivation rules for each ratio, chroma sample positioning, and the
  chroma weight used to combine planar metrics into a weighted average.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package frame

import "fmt"

// Sampling identifies the chroma subsampling ratio of a video.
type Sampling int

const (
	// Sampling400 is monochrome: no chroma planes.
	Sampling400 Sampling = iota
	// Sampling420 halves chroma resolution both horizontally and vertically.
	Sampling420
	// Sampling422 halves chroma resolution horizontally only.
	Sampling422
	// Sampling444 carries chroma at full luma resolution.
	Sampling444
)

func (s Sampling) String() string {
	switch s {
	case Sampling400:
		return "4:0:0"
	case Sampling420:
		return "4:2:0"
	case Sampling422:
		return "4:2:2"
	case Sampling444:
		return "4:4:4"
	default:
		return fmt.Sprintf("Sampling(%d)", int(s))
	}
}

// Weight returns the relative impact of a chroma plane compared to luma
// when computing a chroma-weighted planar average: 0 for monochrome,
// 0.25 for 4:2:0, 0.5 for 4:2:2, 1.0 for 4:4:4.
func (s Sampling) Weight() float64 {
	switch s {
	case Sampling420:
		return 0.25
	case Sampling422:
		return 0.5
	case Sampling444:
		return 1.0
	default:
		return 0.0
	}
}

// ChromaDims returns the chroma plane width and height derived from the
// luma dimensions under this sampling ratio, per spec §3.
func (s Sampling) ChromaDims(lumaWidth, lumaHeight int) (width, height int) {
	switch s {
	case Sampling420:
		return ceilDiv2(lumaWidth), ceilDiv2(lumaHeight)
	case Sampling422:
		return ceilDiv2(lumaWidth), lumaHeight
	case Sampling444:
		return lumaWidth, lumaHeight
	default: // Sampling400
		return 0, 0
	}
}

// Decimation returns the (x, y) decimation shifts used by the CIEDE2000
// chroma-upsampling step: xdec=1 means chroma is horizontally halved,
// ydec=1 means chroma is vertically halved. Monochrome has no meaningful
// decimation and returns ok=false.
func (s Sampling) Decimation() (xdec, ydec int, ok bool) {
	switch s {
	case Sampling420:
		return 1, 1, true
	case Sampling422:
		return 1, 0, true
	case Sampling444:
		return 0, 0, true
	default:
		return 0, 0, false
	}
}

func ceilDiv2(v int) int { return (v + 1) / 2 }

// SamplePosition describes the spatial offset of a chroma sample relative
// to its luma neighborhood.
type SamplePosition int

const (
	// PositionUnknown means the source signaled no chroma position; treated
	// as a pass-through, with a documented accuracy risk.
	PositionUnknown SamplePosition = iota
	// PositionVertical is vertically offset; the only position requiring
	// realignment (see ApplyChromaRealignment).
	PositionVertical
	// PositionColocated is co-located with the (0,0) luma sample.
	PositionColocated
	// PositionBilateral is diagonally located between luma samples.
	PositionBilateral
	// PositionInterpolated describes interlaced content with interpolated
	// chroma; passed through unchanged, like PositionUnknown.
	PositionInterpolated
)
