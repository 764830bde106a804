/*
NAME
  ssim.go

DESCRIPTION
  ssim.go implements the SSIM kernel: Gaussian-weighted moment
  accumulation via a two-pass (horizontal then vertical) convolution, the
  per-plane score, and the log-transform aggregation described in spec
  §4.3.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package ssim computes the structural similarity index (SSIM) and its
// multi-scale variant (MS-SSIM) between two video frames or two videos.
package ssim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
	"github.com/ausocean/vqmetrics/pixel"
)

const (
	kernelShift  = 8
	kernelWeight = 1 << kernelShift

	ssimK1 = 0.01 * 0.01
	ssimK2 = 0.03 * 0.03
)

// moments accumulates the six fixed-point sums a windowed SSIM comparison
// needs: the weighted means of each plane, their weighted second moments
// and cross moment, and the total window weight.
type moments struct {
	mux, muy   int64
	x2, xy, y2 int64
	w          int64
}

// FrameResult is the per-plane, *unweighted* SSIM score for one frame
// pair. Chroma weighting and the log transform are applied afterward,
// either per-frame (Frame) or across a whole video (Aggregate), since the
// two produce numerically different planar averages.
type FrameResult struct {
	Y, U, V float64
}

// Frame8 computes the raw (pre-log) SSIM score for each plane of an
// 8-bit frame pair.
func Frame8(f1, f2 *frame.Frame[uint8], bitDepth int) (FrameResult, error) {
	return frameImpl(f1, f2, bitDepth)
}

// Frame16 computes the raw (pre-log) SSIM score for each plane of a
// 9-16 bit frame pair.
func Frame16(f1, f2 *frame.Frame[uint16], bitDepth int) (FrameResult, error) {
	return frameImpl(f1, f2, bitDepth)
}

func frameImpl[T pixel.Sample](f1, f2 *frame.Frame[T], bitDepth int) (FrameResult, error) {
	if err := f1.CanCompare(f2); err != nil {
		return FrameResult{}, metrics.New(metrics.InputMismatch, err.Error())
	}
	sampleMax := pixel.MaxForDepth(bitDepth)

	plane := func(idx int) float64 {
		p1, p2 := f1.Planes[idx], f2.Planes[idx]
		if p1.Width == 0 || p1.Height == 0 {
			// Empty (monochrome chroma) plane: a raw score of 0 reports as 0.
			return 0
		}
		k := buildGaussianKernel(1.5, min(p1.Width, p1.Height), kernelWeight)
		s, _ := planeSSIM(planeToUint32(p1), planeToUint32(p2), p1.Width, p1.Height, sampleMax, k, k)
		return s
	}
	return FrameResult{Y: plane(0), U: plane(1), V: plane(2)}, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func planeToUint32[T pixel.Sample](p *frame.Plane[T]) []uint32 {
	out := make([]uint32, p.Width*p.Height)
	for y := 0; y < p.Height; y++ {
		row := p.Row(y)
		for x, v := range row {
			out[y*p.Width+x] = pixel.ToUint32(v)
		}
	}
	return out
}

// planeSSIM runs the two-pass windowed convolution over plane1/plane2 and
// returns (ssim, cs): the mean structural similarity and the mean
// contrast-structure term (cs is retained for MS-SSIM's combination
// step). This is a direct translation of the ring-buffer horizontal/
// vertical moment accumulation in spec §4.3.
func planeSSIM(plane1, plane2 []uint32, width, height, sampleMax int, vertKernel, horizKernel []int64) (ssimOut, csOut float64) {
	vertOffset := len(vertKernel) >> 1
	lineSize := nextPowerOfTwo(len(vertKernel))
	lineMask := lineSize - 1
	lines := make([][]moments, lineSize)
	for i := range lines {
		lines[i] = make([]moments, width)
	}
	horizOffset := len(horizKernel) >> 1

	var ssim, ssimW, cs float64

	for y := 0; y < height+vertOffset; y++ {
		if y < height {
			buf := lines[y&lineMask]
			line1 := plane1[y*width:]
			line2 := plane2[y*width:]
			for x := 0; x < width; x++ {
				var m moments
				kMin := satSub(horizOffset, x)
				tmpOffset := satSub(x+horizOffset+1, width)
				kMax := len(horizKernel) - tmpOffset
				for k := kMin; k < kMax; k++ {
					window := horizKernel[k]
					targetX := satSub(x+k, horizOffset)
					pix1 := int64(line1[targetX])
					pix2 := int64(line2[targetX])
					m.mux += window * pix1
					m.muy += window * pix2
					m.x2 += window * pix1 * pix1
					m.xy += window * pix1 * pix2
					m.y2 += window * pix2 * pix2
					m.w += window
				}
				buf[x] = m
			}
		}
		if y >= vertOffset {
			kMin := satSub(len(vertKernel), y+1)
			tmpOffset := satSub(y+1, height)
			kMax := len(vertKernel) - tmpOffset
			for x := 0; x < width; x++ {
				var m moments
				for k := kMin; k < kMax; k++ {
					buf := lines[(y+1+k-len(vertKernel))&lineMask][x]
					window := vertKernel[k]
					m.mux += window * buf.mux
					m.muy += window * buf.muy
					m.x2 += window * buf.x2
					m.xy += window * buf.xy
					m.y2 += window * buf.y2
					m.w += window * buf.w
				}
				w := float64(m.w)
				c1 := float64(sampleMax*sampleMax) * ssimK1 * w * w
				c2 := float64(sampleMax*sampleMax) * ssimK2 * w * w
				mx2 := float64(m.mux) * float64(m.mux)
				mxy := float64(m.mux) * float64(m.muy)
				my2 := float64(m.muy) * float64(m.muy)
				csTmp := w * (c2 + 2.0*(float64(m.xy)*w-mxy)) /
					(float64(m.x2)*w - mx2 + float64(m.y2)*w - my2 + c2)
				cs += csTmp
				ssim += csTmp * (2.0*mxy + c1) / (mx2 + my2 + c1)
				ssimW += w
			}
		}
	}
	return ssim / ssimW, cs / ssimW
}

// satSub is saturating subtraction over non-negative ints: max(a-b, 0).
func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}

func nextPowerOfTwo(v int) int {
	if v <= 1 {
		return 1
	}
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}

// log10Convert maps a raw SSIM-family score r in (0,1] to the reported
// scale `10*(log10(weight) - log10(weight-score))`, per spec §4.3, capped
// at 100 so that a perfect match (score == weight) reports 100.
func log10Convert(score, weight float64) float64 {
	if weight-score <= 0 {
		return 100.0
	}
	return math.Min(100.0, 10.0*(math.Log10(weight)-math.Log10(weight-score)))
}

// cweight is the chroma weight the caller passes in (see
// frame.Sampling.Weight); the weighted planar average needs it both
// per-frame and across a video.
type cweight = float64

// Frame converts a raw per-plane FrameResult into the reported per-frame
// Planar SSIM score.
func Frame(fr FrameResult, chromaWeight cweight) metrics.Planar {
	return metrics.Planar{
		Y: log10Convert(fr.Y, 1.0),
		U: log10Convert(fr.U, 1.0),
		V: log10Convert(fr.V, 1.0),
		Avg: log10Convert(
			fr.Y+chromaWeight*(fr.U+fr.V),
			1.0+2.0*chromaWeight,
		),
	}
}

// Aggregate reduces a video's worth of raw per-frame FrameResults into
// the video-level Planar SSIM score: each plane's sum is log-converted
// against the frame count as weight, per spec §4.3.
func Aggregate(results []FrameResult, chromaWeight cweight) (metrics.Planar, error) {
	if len(results) == 0 {
		return metrics.Planar{}, metrics.New(metrics.UnsupportedInput, "no readable frames")
	}
	ys := make([]float64, len(results))
	us := make([]float64, len(results))
	vs := make([]float64, len(results))
	for i, r := range results {
		ys[i], us[i], vs[i] = r.Y, r.U, r.V
	}
	ySum, uSum, vSum := floats.Sum(ys), floats.Sum(us), floats.Sum(vs)
	n := float64(len(results))
	return metrics.Planar{
		Y: log10Convert(ySum, n),
		U: log10Convert(uSum, n),
		V: log10Convert(vSum, n),
		Avg: log10Convert(
			ySum+chromaWeight*(uSum+vSum),
			(1.0+2.0*chromaWeight)*n,
		),
	}, nil
}

// meanOf is a small wrapper kept for parity with the APSNR-style
// frame-averaging aggregators elsewhere in vqmetrics. SSIM's own
// aggregation sums first and log-converts once; nothing in the package,
// its tests included, calls meanOf.
func meanOf(xs []float64) float64 { return stat.Mean(xs, nil) }
