/*
NAME
  psnrhvs.go

DESCRIPTION
  psnrhvs.go implements the PSNR-HVS kernel: an 8x8 sliding-window block
  scan, per-block quadrant variance masking, DCT-domain error
  accumulation against the CSF tables, and the video-level aggregator,
  per spec §4.5.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package psnrhvs

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
	"github.com/ausocean/vqmetrics/pixel"
)

const blockStep = 7
const blockSize = 8

// FrameResult holds the raw (pre-log) per-plane score and sample-max
// contribution for one frame pair, deferred the same way PSNR defers its
// formula so both per-frame and video-level reporting can reuse it.
type FrameResult struct {
	Y, U, V   float64
	SampleMax int
}

// Frame8 computes the raw PSNR-HVS score for each plane of an 8-bit frame
// pair.
func Frame8(f1, f2 *frame.Frame[uint8], bitDepth int) (FrameResult, error) {
	return frameImpl(f1, f2, bitDepth)
}

// Frame16 computes the raw PSNR-HVS score for each plane of a 9-16 bit
// frame pair.
func Frame16(f1, f2 *frame.Frame[uint16], bitDepth int) (FrameResult, error) {
	return frameImpl(f1, f2, bitDepth)
}

func frameImpl[T pixel.Sample](f1, f2 *frame.Frame[T], bitDepth int) (FrameResult, error) {
	if err := f1.CanCompare(f2); err != nil {
		return FrameResult{}, metrics.New(metrics.InputMismatch, err.Error())
	}
	sampleMax := pixel.MaxForDepth(bitDepth)

	// The Cb/Cr tables are for 4:2:0 chroma; other samplings reuse luma's.
	cbMask, crMask := &maskCb420, &maskCr420
	if f1.ChromaFmt != frame.Sampling420 {
		cbMask, crMask = &maskY, &maskY
	}

	y := planeScore(planeToFloat(f1.Planes[0]), planeToFloat(f2.Planes[0]), f1.Planes[0].Width, f1.Planes[0].Height, &maskY, sampleMax)
	u := planeScore(planeToFloat(f1.Planes[1]), planeToFloat(f2.Planes[1]), f1.Planes[1].Width, f1.Planes[1].Height, cbMask, sampleMax)
	v := planeScore(planeToFloat(f1.Planes[2]), planeToFloat(f2.Planes[2]), f1.Planes[2].Width, f1.Planes[2].Height, crMask, sampleMax)
	if f1.ChromaFmt == frame.Sampling400 {
		// Monochrome has no chroma: a raw score of 1 reports as 0.
		u, v = 1, 1
	}

	return FrameResult{Y: y, U: u, V: v, SampleMax: sampleMax}, nil
}

func planeToFloat[T pixel.Sample](p *frame.Plane[T]) []float64 {
	out := make([]float64, p.Width*p.Height)
	for y := 0; y < p.Height; y++ {
		row := p.Row(y)
		for x, v := range row {
			out[y*p.Width+x] = float64(pixel.ToUint32(v))
		}
	}
	return out
}

// planeScore slides an 8x8 window (stride 7) over plane1/plane2,
// accumulating the masked DCT-domain squared error described in spec
// §4.5, and returns the raw (pre-log) mean-squared-error-like score.
func planeScore(plane1, plane2 []float64, width, height int, mask *[8][8]float64, sampleMax int) float64 {
	if width < blockSize || height < blockSize {
		return 0
	}
	var result float64
	var pixels int

	for y := 0; y+blockSize <= height; y += blockStep {
		for x := 0; x+blockSize <= width; x += blockStep {
			result += blockError(plane1, plane2, width, x, y, mask)
			pixels += blockSize * blockSize
		}
	}
	if pixels == 0 {
		return 0
	}
	result /= float64(pixels)
	result /= float64(sampleMax * sampleMax)
	return result
}

// blockError computes the masked DCT-domain contribution of one 8x8
// block, combining global and quadrant variance into a masking threshold
// per coefficient before accumulating the squared, CSF-weighted error.
func blockError(plane1, plane2 []float64, stride, x0, y0 int, csfMask *[8][8]float64) float64 {
	var block1, block2 [8][8]float64
	for j := 0; j < blockSize; j++ {
		for i := 0; i < blockSize; i++ {
			block1[j][i] = plane1[(y0+j)*stride+x0+i]
			block2[j][i] = plane2[(y0+j)*stride+x0+i]
		}
	}

	mask1 := blockMask(&block1)
	mask2 := blockMask(&block2)
	m := mask1
	if mask2 > m {
		m = mask2
	}

	var dct1, dct2 [8][8]int32
	for j := 0; j < blockSize; j++ {
		for i := 0; i < blockSize; i++ {
			dct1[j][i] = int32(block1[j][i])
			dct2[j][i] = int32(block2[j][i])
		}
	}
	odBinFdct8x8(&dct1)
	odBinFdct8x8(&dct2)

	var sum float64
	for i := 0; i < blockSize; i++ {
		for j := 0; j < blockSize; j++ {
			diff := math.Abs(float64(dct1[i][j] - dct2[i][j]))
			var err float64
			if i == 0 && j == 0 {
				err = diff
			} else {
				err = diff - m/csfMask[i][j]
				if err < 0 {
					err = 0
				}
			}
			weighted := err * csfMask[i][j]
			sum += weighted * weighted
		}
	}
	return sum
}

// blockMask computes the masking threshold for one 8x8 block: the global
// variance scaled by 64/63, compared against the mean of the four
// quadrant variances (each scaled by 16/15) via their ratio, per spec
// §4.5.
func blockMask(block *[8][8]float64) float64 {
	var sum, sumSq float64
	var quadSum, quadSumSq [4]float64

	for j := 0; j < blockSize; j++ {
		for i := 0; i < blockSize; i++ {
			v := block[j][i]
			sum += v
			sumSq += v * v
		}
	}

	// Quadrant index uses the top-left 4x4 sub-block coordinates: rows
	// 0-3/4-7 and columns 0-3/4-7 select one of four quadrants.
	for j := 0; j < blockSize; j++ {
		qj := 0
		if j >= 4 {
			qj = 1
		}
		for i := 0; i < blockSize; i++ {
			qi := 0
			if i >= 4 {
				qi = 1
			}
			q := qj*2 + qi
			v := block[j][i]
			quadSum[q] += v
			quadSumSq[q] += v * v
		}
	}

	n := float64(blockSize * blockSize)
	gvar := variance(sum, sumSq, n) * (64.0 / 63.0)

	qn := n / 4.0
	var varsSum float64
	for q := 0; q < 4; q++ {
		varsSum += variance(quadSum[q], quadSumSq[q], qn) * (16.0 / 15.0)
	}

	if gvar > 0 {
		return (varsSum / 4.0) / gvar
	}
	return varsSum / 4.0
}

func variance(sum, sumSq, n float64) float64 {
	mean := sum / n
	v := sumSq/n - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// log10Convert maps the raw score to the reported scale
// `10*(-log10(score))`, per spec §4.5.
func log10Convert(score float64) float64 {
	if score <= 0 {
		return 100.0
	}
	return 10.0 * -math.Log10(score)
}

// Frame converts a FrameResult into the reported per-frame Planar
// PSNR-HVS score.
func Frame(fr FrameResult, chromaWeight float64) metrics.Planar {
	return metrics.Planar{
		Y:   log10Convert(fr.Y),
		U:   log10Convert(fr.U),
		V:   log10Convert(fr.V),
		Avg: log10Convert(frame.PlanarWeightedAverage(fr.Y, fr.U, fr.V, chromaWeight)),
	}
}

// Aggregate reduces a video's worth of FrameResults into the video-level
// Planar PSNR-HVS score, averaging raw scores across frames before the
// single log transform, matching the summed-then-converted pattern used
// by PSNR and SSIM rather than averaging already-converted per-frame
// scores.
func Aggregate(results []FrameResult, chromaWeight float64) (metrics.Planar, error) {
	if len(results) == 0 {
		return metrics.Planar{}, metrics.New(metrics.UnsupportedInput, "no readable frames")
	}
	ys := make([]float64, len(results))
	us := make([]float64, len(results))
	vs := make([]float64, len(results))
	for i, r := range results {
		ys[i], us[i], vs[i] = r.Y, r.U, r.V
	}
	yMean := stat.Mean(ys, nil)
	uMean := stat.Mean(us, nil)
	vMean := stat.Mean(vs, nil)
	return metrics.Planar{
		Y:   log10Convert(yMean),
		U:   log10Convert(uMean),
		V:   log10Convert(vMean),
		Avg: log10Convert(frame.PlanarWeightedAverage(yMean, uMean, vMean, chromaWeight)),
	}, nil
}
