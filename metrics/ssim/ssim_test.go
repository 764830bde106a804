/*
NAME
  ssim_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package ssim

import (
	"math"
	"testing"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func gradientFrame(width, height int, chroma frame.Sampling, seed uint8) *frame.Frame[uint8] {
	f := frame.NewFrame[uint8](width, height, chroma, 8)
	fillGradient := func(p *frame.Plane[uint8], base uint8) {
		for y := 0; y < p.Height; y++ {
			row := p.Row(y)
			for x := range row {
				row[x] = base + uint8((x+y)%32)
			}
		}
	}
	fillGradient(f.Y(), seed)
	if chroma != frame.Sampling400 {
		fillGradient(f.U(), seed+10)
		fillGradient(f.V(), seed+20)
	}
	return f
}

func TestMonochromeAvgEqualsY(t *testing.T) {
	f1 := gradientFrame(32, 32, frame.Sampling400, 50)
	f2 := gradientFrame(32, 32, frame.Sampling400, 60)

	fr, err := Frame8(f1, f2, 8)
	if err != nil {
		t.Fatalf("Frame8() error = %v", err)
	}
	got := Frame(fr, 0.0)
	if !almostEqual(got.Avg, got.Y, 1e-9) {
		t.Errorf("monochrome avg = %v, want equal to y = %v", got.Avg, got.Y)
	}
}

func TestChromaWeightIdentity(t *testing.T) {
	// Substituting u = v = y should yield avg = log10Convert(y) = the y
	// score itself, for any chroma weight.
	fr := FrameResult{Y: 0.9, U: 0.9, V: 0.9}
	yOnly := Frame(fr, 0.0)
	for _, w := range []float64{0.0, 0.25, 0.5, 1.0} {
		got := Frame(fr, w)
		if !almostEqual(got.Avg, yOnly.Y, 1e-9) {
			t.Errorf("Frame(fr, %v).Avg = %v, want %v", w, got.Avg, yOnly.Y)
		}
	}
}

func TestBitDepthMismatch(t *testing.T) {
	f1 := frame.NewFrame[uint8](16, 16, frame.Sampling420, 8)
	f2 := frame.NewFrame[uint8](16, 16, frame.Sampling420, 8)
	f2.BitDepth = 10
	_, err := Frame8(f1, f2, 8)
	if err == nil {
		t.Fatal("Frame8() error = nil, want InputMismatch")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.InputMismatch {
		t.Errorf("err = %v, want *metrics.Error{Kind: InputMismatch}", err)
	}
}

func TestAggregateEmptyIsUnsupported(t *testing.T) {
	_, err := Aggregate(nil, 0.25)
	if err == nil {
		t.Fatal("Aggregate(nil, ...) error = nil, want UnsupportedInput")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.UnsupportedInput {
		t.Errorf("err = %v, want *metrics.Error{Kind: UnsupportedInput}", err)
	}
}

func TestBuildGaussianKernelSumsToWeight(t *testing.T) {
	k := buildGaussianKernel(1.5, 5, 256)
	var sum int64
	for _, v := range k {
		sum += v
	}
	if sum != 256 {
		t.Errorf("kernel sums to %d, want 256", sum)
	}
}

func TestBuildGaussianKernelSymmetric(t *testing.T) {
	k := buildGaussianKernel(1.5, 5, 1024)
	n := len(k)
	for i := 0; i < n/2; i++ {
		if k[i] != k[n-1-i] {
			t.Errorf("kernel not symmetric at %d/%d: %d != %d", i, n-1-i, k[i], k[n-1-i])
		}
	}
}
