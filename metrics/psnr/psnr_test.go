/*
NAME
  psnr_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package psnr

import (
	"math"
	"testing"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func constFrame(width, height int, chroma frame.Sampling, y, u, v uint8) *frame.Frame[uint8] {
	f := frame.NewFrame[uint8](width, height, chroma, 8)
	fill := func(p *frame.Plane[uint8], v uint8) {
		for i := range p.Data {
			p.Data[i] = v
		}
	}
	fill(f.Y(), y)
	if chroma != frame.Sampling400 {
		fill(f.U(), u)
		fill(f.V(), v)
	}
	return f
}

func TestIdenticalFramesScore100(t *testing.T) {
	f1 := constFrame(16, 16, frame.Sampling420, 128, 128, 128)
	f2 := constFrame(16, 16, frame.Sampling420, 128, 128, 128)

	fr, err := Frame8(f1, f2, 8)
	if err != nil {
		t.Fatalf("Frame8() error = %v", err)
	}
	got := Frame(fr)
	if !almostEqual(got.Y, 100, 0.001) || !almostEqual(got.Avg, 100, 0.001) {
		t.Errorf("identical frames: got %+v, want all scores == 100", got)
	}
}

func TestMonochromeAvgEqualsY(t *testing.T) {
	f1 := constFrame(16, 16, frame.Sampling400, 128, 0, 0)
	f2 := constFrame(16, 16, frame.Sampling400, 130, 0, 0)
	f1.Y().Data[0] = 100 // introduce some error so avg isn't trivially 100.
	f2.Y().Data[0] = 110

	fr, err := Frame8(f1, f2, 8)
	if err != nil {
		t.Fatalf("Frame8() error = %v", err)
	}
	got := Frame(fr)
	if !almostEqual(got.Avg, got.Y, 1e-9) {
		t.Errorf("monochrome avg = %v, want equal to y = %v", got.Avg, got.Y)
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
	_, _, err := Aggregate(nil)
	if err == nil {
		t.Fatal("Aggregate(nil) error = nil, want UnsupportedInput")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.UnsupportedInput {
		t.Errorf("err = %v, want *metrics.Error{Kind: UnsupportedInput}", err)
	}
}

func TestSingleFrameVideoMatchesPerFrame(t *testing.T) {
	f1 := constFrame(16, 16, frame.Sampling420, 128, 128, 128)
	f2 := constFrame(16, 16, frame.Sampling420, 120, 128, 128)

	fr, err := Frame8(f1, f2, 8)
	if err != nil {
		t.Fatalf("Frame8() error = %v", err)
	}
	perFrame := Frame(fr)

	psnrOut, apsnrOut, err := Aggregate([]FrameResult{fr})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if !almostEqual(psnrOut.Avg, perFrame.Avg, 1e-6) {
		t.Errorf("single-frame PSNR avg = %v, want %v", psnrOut.Avg, perFrame.Avg)
	}
	if !almostEqual(apsnrOut.Avg, perFrame.Avg, 1e-6) {
		t.Errorf("single-frame APSNR avg = %v, want %v", apsnrOut.Avg, perFrame.Avg)
	}
}

func TestKnownSquaredError(t *testing.T) {
	// A single differing sample of magnitude 10 across a 4x4 luma plane
	// (16 pixels) gives SSE=100, PSNR = 10*(log10(255^2)+log10(16)-log10(100)).
	f1 := constFrame(4, 4, frame.Sampling400, 100, 0, 0)
	f2 := constFrame(4, 4, frame.Sampling400, 100, 0, 0)
	f2.Y().Data[0] = 110

	fr, err := Frame8(f1, f2, 8)
	if err != nil {
		t.Fatalf("Frame8() error = %v", err)
	}
	want := 10.0 * (math.Log10(255.0*255.0) + math.Log10(16) - math.Log10(100))
	got := Frame(fr).Y
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("Y PSNR = %v, want %v", got, want)
	}
}
