/*
NAME
  msssim.go

DESCRIPTION
  msssim.go implements the multi-scale SSIM (MS-SSIM) kernel: a five-scale
  Gaussian pyramid built by repeated sum-based 2x2 downscaling, combined
  via the weighted product described in spec §4.4.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package ssim

import (
	"math"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
	"github.com/ausocean/vqmetrics/pixel"
)

const msScales = 5

// msWeight is the per-scale combination weight from Wang, Simoncelli and
// Bovik's original MS-SSIM paper, used unchanged by spec §4.4.
var msWeight = [msScales]float64{0.0448, 0.2856, 0.3001, 0.2363, 0.1333}

const msKernelShift = 10
const msKernelWeight = 1 << msKernelShift

// MSFrameResult holds the raw per-scale cs terms plus the final scale's
// ssim term, ready for Frame/Aggregate's weighted product.
type MSFrameResult struct {
	CS   [msScales]float64
	SSIM float64
}

// Frame8MS computes the raw MS-SSIM pyramid for one plane triple of an
// 8-bit frame pair.
func Frame8MS(f1, f2 *frame.Frame[uint8], bitDepth int) (FrameTriple, error) {
	return msFrameImpl(f1, f2, bitDepth)
}

// Frame16MS computes the raw MS-SSIM pyramid for a 9-16 bit frame pair.
func Frame16MS(f1, f2 *frame.Frame[uint16], bitDepth int) (FrameTriple, error) {
	return msFrameImpl(f1, f2, bitDepth)
}

// FrameTriple is one MSFrameResult per plane (Y, U, V).
type FrameTriple [3]MSFrameResult

func msFrameImpl[T pixel.Sample](f1, f2 *frame.Frame[T], bitDepth int) (FrameTriple, error) {
	if err := f1.CanCompare(f2); err != nil {
		return FrameTriple{}, metrics.New(metrics.InputMismatch, err.Error())
	}
	sampleMax := pixel.MaxForDepth(bitDepth)

	var out FrameTriple
	for idx := 0; idx < 3; idx++ {
		p1, p2 := f1.Planes[idx], f2.Planes[idx]
		if p1.Width == 0 || p1.Height == 0 {
			// Empty (monochrome chroma) plane: the zero result combines to
			// a raw score of 0, which reports as 0.
			continue
		}
		out[idx] = planeMSSSIM(planeToUint32(p1), planeToUint32(p2), p1.Width, p1.Height, sampleMax)
	}
	return out, nil
}

// planeMSSSIM repeatedly downscales plane1/plane2, running the SSIM
// convolution at each scale, and returns the per-scale cs terms plus the
// last scale's ssim term.
func planeMSSSIM(plane1, plane2 []uint32, width, height, sampleMax int) MSFrameResult {
	var result MSFrameResult
	curr1, curr2 := plane1, plane2
	w, h, max := width, height, sampleMax

	for scale := 0; scale < msScales; scale++ {
		k := buildGaussianKernel(1.5, 5, msKernelWeight)
		ssim, cs := planeSSIM(curr1, curr2, w, h, max, k, k)
		result.CS[scale] = cs
		if scale == msScales-1 {
			result.SSIM = ssim
		}
		if scale < msScales-1 {
			curr1, curr2, w, h = downscale(curr1, curr2, w, h)
			max *= 4
		}
	}
	return result
}

// downscale halves both dimensions by summing each non-overlapping 2x2
// block, per spec §4.4. An odd width or height drops its trailing
// row/column rather than duplicating it into a partial block.
func downscale(plane1, plane2 []uint32, width, height int) (out1, out2 []uint32, outW, outH int) {
	outW = width / 2
	outH = height / 2
	out1 = make([]uint32, outW*outH)
	out2 = make([]uint32, outW*outH)

	for j := 0; j < outH; j++ {
		j0 := j * 2
		j1 := j0 + 1
		for i := 0; i < outW; i++ {
			i0 := i * 2
			i1 := i0 + 1
			out1[j*outW+i] = plane1[j0*width+i0] + plane1[j0*width+i1] +
				plane1[j1*width+i0] + plane1[j1*width+i1]
			out2[j*outW+i] = plane2[j0*width+i0] + plane2[j0*width+i1] +
				plane2[j1*width+i0] + plane2[j1*width+i1]
		}
	}
	return out1, out2, outW, outH
}

// combine folds the per-scale cs terms and the final ssim term into a
// single raw score via the weighted product from spec §4.4.
func combine(r MSFrameResult) float64 {
	score := 1.0
	for i := 0; i < msScales-1; i++ {
		score *= pow(r.CS[i], msWeight[i])
	}
	score *= pow(r.SSIM, msWeight[msScales-1])
	return score
}

func pow(base, exp float64) float64 {
	if base <= 0 {
		return 0
	}
	return math.Pow(base, exp)
}

// FrameMS converts a raw per-plane FrameTriple into the reported
// per-frame Planar MS-SSIM score.
func FrameMS(tr FrameTriple, chromaWeight cweight) metrics.Planar {
	y := combine(tr[0])
	u := combine(tr[1])
	v := combine(tr[2])
	return metrics.Planar{
		Y: log10Convert(y, 1.0),
		U: log10Convert(u, 1.0),
		V: log10Convert(v, 1.0),
		Avg: log10Convert(
			y+chromaWeight*(u+v),
			1.0+2.0*chromaWeight,
		),
	}
}

// AggregateMS reduces a video's worth of raw FrameTriple results into
// the video-level Planar MS-SSIM score, combining per-frame before
// averaging (unlike SSIM, whose combine step is linear and can be summed
// first; MS-SSIM's product combine cannot).
func AggregateMS(results []FrameTriple, chromaWeight cweight) (metrics.Planar, error) {
	if len(results) == 0 {
		return metrics.Planar{}, metrics.New(metrics.UnsupportedInput, "no readable frames")
	}
	n := float64(len(results))
	var ySum, uSum, vSum, avgSum float64
	for _, r := range results {
		fr := FrameMS(r, chromaWeight)
		ySum += fr.Y
		uSum += fr.U
		vSum += fr.V
		avgSum += fr.Avg
	}
	return metrics.Planar{
		Y:   ySum / n,
		U:   uSum / n,
		V:   vSum / n,
		Avg: avgSum / n,
	}, nil
}
