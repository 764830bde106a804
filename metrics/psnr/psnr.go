/*
NAME
  psnr.go

DESCRIPTION
  psnr.go implements the PSNR and APSNR kernels: per-plane squared-error
  accumulation, the two video-level aggregation modes described in spec
  §4.2, and the concurrent per-frame entry points the driver dispatches
  to.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package psnr computes peak signal-to-noise ratio and its
// arithmetic-mean-per-frame variant, APSNR, between two video frames or
// two videos.
package psnr

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
	"github.com/ausocean/vqmetrics/pixel"
)

// PlaneMetrics holds the raw accumulation for one plane of one frame
// pair: the sum of squared sample differences, the pixel count, and the
// sample ceiling implied by the bit depth.
type PlaneMetrics struct {
	SqErr     float64
	NPixels   int
	SampleMax int
}

// FrameResult is the per-frame output of the PSNR kernel: one
// PlaneMetrics for each of Y, U, V. Aggregation (both PSNR and APSNR) is
// deferred to the video-level step since it depends on how many frames
// there are.
type FrameResult [3]PlaneMetrics

// Frame8 computes the PSNR kernel's per-frame accumulation for 8-bit
// video. Frame16 is its 9-16 bit counterpart; both share frameImpl.
func Frame8(f1, f2 *frame.Frame[uint8], bitDepth int) (FrameResult, error) {
	return frameImpl(f1, f2, bitDepth)
}

// Frame16 computes the PSNR kernel's per-frame accumulation for 9-16 bit
// video.
func Frame16(f1, f2 *frame.Frame[uint16], bitDepth int) (FrameResult, error) {
	return frameImpl(f1, f2, bitDepth)
}

func frameImpl[T pixel.Sample](f1, f2 *frame.Frame[T], bitDepth int) (FrameResult, error) {
	if err := f1.CanCompare(f2); err != nil {
		return FrameResult{}, metrics.New(metrics.InputMismatch, err.Error())
	}

	// Per spec §5: "Within a single frame, PSNR additionally fans its
	// three plane computations out to the pool (each plane is
	// independent)".
	var result FrameResult
	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func(i int) {
			defer wg.Done()
			result[i] = planeMetrics(f1.Planes[i], f2.Planes[i], bitDepth)
		}(i)
	}
	wg.Wait()
	return result, nil
}

func planeMetrics[T pixel.Sample](p1, p2 *frame.Plane[T], bitDepth int) PlaneMetrics {
	return PlaneMetrics{
		SqErr:     planeSquaredError(p1, p2),
		NPixels:   p1.Width * p1.Height,
		SampleMax: pixel.MaxForDepth(bitDepth),
	}
}

// planeSquaredError computes SSE = sum((a_i - b_i)^2) promoting the
// per-sample difference to i32 (so it can be negative) before squaring
// into a u64 accumulator, per spec §4.2.
func planeSquaredError[T pixel.Sample](p1, p2 *frame.Plane[T]) float64 {
	var sum uint64
	for y := 0; y < p1.Height; y++ {
		row1 := p1.Row(y)
		row2 := p2.Row(y)
		for x, a := range row1 {
			d := pixel.ToInt32(a) - pixel.ToInt32(row2[x])
			if d < 0 {
				d = -d
			}
			ud := uint64(d)
			sum += ud * ud
		}
	}
	return float64(sum)
}

// psnrFromSums applies the PSNR formula to a combined SSE/N pair, capping
// at 100 when SSE is within machine epsilon of zero. An empty plane (the
// chroma planes of monochrome video) scores 0.
func psnrFromSums(sqErr float64, nPixels int, sampleMax int) float64 {
	if nPixels == 0 {
		return 0
	}
	if sqErr <= eps {
		return 100.0
	}
	return 10.0 * (math.Log10(float64(sampleMax*sampleMax)) + math.Log10(float64(nPixels)) - math.Log10(sqErr))
}

const eps = 2.2204460492503131e-16 // float64 machine epsilon, per spec §4.2.

func summedPSNR(ms []PlaneMetrics) float64 {
	var sqErr float64
	var n int
	var max int
	for _, m := range ms {
		sqErr += m.SqErr
		n += m.NPixels
		max = m.SampleMax
	}
	return psnrFromSums(sqErr, n, max)
}

// Frame converts a FrameResult into the per-frame Planar PSNR score: each
// plane's own PSNR, plus a planar average computed from the *summed*
// SSE/N across all three planes (not a chroma-weighted mean of the three
// per-plane PSNRs), per spec §4.2.
func Frame(fr FrameResult) metrics.Planar {
	return metrics.Planar{
		Y:   psnrFromSums(fr[0].SqErr, fr[0].NPixels, fr[0].SampleMax),
		U:   psnrFromSums(fr[1].SqErr, fr[1].NPixels, fr[1].SampleMax),
		V:   psnrFromSums(fr[2].SqErr, fr[2].NPixels, fr[2].SampleMax),
		Avg: summedPSNR(fr[:]),
	}
}

// Aggregate reduces a video's worth of per-frame FrameResults into both
// the PSNR (global: sums before the log) and APSNR (frame-averaged: log
// per frame, then mean) planar results, per spec §4.2.
func Aggregate(results []FrameResult) (psnrOut, apsnrOut metrics.Planar, err error) {
	if len(results) == 0 {
		return metrics.Planar{}, metrics.Planar{}, metrics.New(metrics.UnsupportedInput, "no readable frames")
	}

	planeSums := func(idx int) (sqErr float64, n int, max int) {
		sq := make([]float64, len(results))
		for i, r := range results {
			sq[i] = r[idx].SqErr
			n += r[idx].NPixels
			max = r[idx].SampleMax
		}
		return floats.Sum(sq), n, max
	}

	ySq, yN, yMax := planeSums(0)
	uSq, uN, uMax := planeSums(1)
	vSq, vN, vMax := planeSums(2)

	psnrOut = metrics.Planar{
		Y:   psnrFromSums(ySq, yN, yMax),
		U:   psnrFromSums(uSq, uN, uMax),
		V:   psnrFromSums(vSq, vN, vMax),
		Avg: psnrFromSums(ySq+uSq+vSq, yN+uN+vN, yMax),
	}

	yPerFrame := make([]float64, len(results))
	uPerFrame := make([]float64, len(results))
	vPerFrame := make([]float64, len(results))
	avgPerFrame := make([]float64, len(results))
	for i, r := range results {
		yPerFrame[i] = psnrFromSums(r[0].SqErr, r[0].NPixels, r[0].SampleMax)
		uPerFrame[i] = psnrFromSums(r[1].SqErr, r[1].NPixels, r[1].SampleMax)
		vPerFrame[i] = psnrFromSums(r[2].SqErr, r[2].NPixels, r[2].SampleMax)
		avgPerFrame[i] = summedPSNR(r[:])
	}
	apsnrOut = metrics.Planar{
		Y:   stat.Mean(yPerFrame, nil),
		U:   stat.Mean(uPerFrame, nil),
		V:   stat.Mean(vPerFrame, nil),
		Avg: stat.Mean(avgPerFrame, nil),
	}
	return psnrOut, apsnrOut, nil
}
