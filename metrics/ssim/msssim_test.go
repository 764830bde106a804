/*
NAME
  msssim_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package ssim

import (
	"testing"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
)

func TestIdenticalFramesMaximalScore(t *testing.T) {
	f1 := gradientFrame(64, 64, frame.Sampling420, 40)
	f2 := gradientFrame(64, 64, frame.Sampling420, 40)

	tr, err := Frame8MS(f1, f2, 8)
	if err != nil {
		t.Fatalf("Frame8MS() error = %v", err)
	}
	got := FrameMS(tr, 0.25)
	if !almostEqual(got.Avg, 100, 0.01) {
		t.Errorf("identical frames MS-SSIM avg = %v, want ~100", got.Avg)
	}
}

func TestAggregateMSEmptyIsUnsupported(t *testing.T) {
	_, err := AggregateMS(nil, 0.25)
	if err == nil {
		t.Fatal("AggregateMS(nil, ...) error = nil, want UnsupportedInput")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.UnsupportedInput {
		t.Errorf("err = %v, want *metrics.Error{Kind: UnsupportedInput}", err)
	}
}

func TestDownscaleHalvesDimensions(t *testing.T) {
	plane1 := make([]uint32, 8*8)
	plane2 := make([]uint32, 8*8)
	for i := range plane1 {
		plane1[i] = uint32(i)
		plane2[i] = uint32(i)
	}
	out1, out2, w, h := downscale(plane1, plane2, 8, 8)
	if w != 4 || h != 4 {
		t.Fatalf("downscale dims = %dx%d, want 4x4", w, h)
	}
	if len(out1) != 16 || len(out2) != 16 {
		t.Fatalf("len(out1)=%d len(out2)=%d, want 16 each", len(out1), len(out2))
	}
}

func TestDownscaleOddDimensionDropsTrailingRowAndColumn(t *testing.T) {
	// A 3x3 plane of all-ones downscales to 1x1 (floor(3/2)=1): the
	// trailing row and column are dropped entirely rather than folded
	// into a partial block, matching the reference implementation.
	plane1 := make([]uint32, 9)
	for i := range plane1 {
		plane1[i] = 1
	}
	out1, _, w, h := downscale(plane1, plane1, 3, 3)
	if w != 1 || h != 1 {
		t.Fatalf("downscale dims = %dx%d, want 1x1", w, h)
	}
	if out1[0] != 4 {
		t.Errorf("out1[0] = %d, want 4", out1[0])
	}
}

func TestCombineNonPositiveBaseYieldsZero(t *testing.T) {
	if got := pow(-1, 0.5); got != 0 {
		t.Errorf("pow(-1, 0.5) = %v, want 0", got)
	}
	if got := pow(0, 0.5); got != 0 {
		t.Errorf("pow(0, 0.5) = %v, want 0", got)
	}
}
