/*
NAME
  engine_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package engine

import (
	"errors"
	"testing"

	"github.com/ausocean/vqmetrics/decode"
	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
)

// sliceDecoder is a decode.Decoder[uint8] test double that serves frames
// from a pre-built slice, optionally failing after a given count.
type sliceDecoder struct {
	frames  []*frame.Frame[uint8]
	i       int
	failAt  int // index at which ReadFrame returns an error; -1 disables.
	details decode.VideoDetails
}

func newSliceDecoder(n int) *sliceDecoder {
	frames := make([]*frame.Frame[uint8], n)
	for i := range frames {
		f := frame.NewFrame[uint8](4, 4, frame.Sampling400, 8)
		for j := range f.Y().Data {
			f.Y().Data[j] = uint8(i)
		}
		frames[i] = f
	}
	return &sliceDecoder{frames: frames, failAt: -1, details: decode.DefaultVideoDetails()}
}

func (d *sliceDecoder) VideoDetails() decode.VideoDetails { return d.details }
func (d *sliceDecoder) BitDepth() int                     { return d.details.BitDepth }

func (d *sliceDecoder) ReadFrame() (*frame.Frame[uint8], error) {
	if d.failAt >= 0 && d.i == d.failAt {
		return nil, errors.New("simulated decode failure")
	}
	if d.i >= len(d.frames) {
		return nil, nil
	}
	f := d.frames[d.i]
	d.i++
	return f, nil
}

func sumKernel(f1, f2 *frame.Frame[uint8]) (int, error) {
	return int(f1.Y().Data[0]) + int(f2.Y().Data[0]), nil
}

func TestRunReturnsResultsInOrder(t *testing.T) {
	dec1 := newSliceDecoder(20)
	dec2 := newSliceDecoder(20)

	results, err := Run[uint8, int](dec1, dec2, sumKernel, Options{Workers: 4})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("len(results) = %d, want 20", len(results))
	}
	for i, r := range results {
		want := i + i // frame i has value i in both decoders.
		if r != want {
			t.Errorf("results[%d] = %d, want %d", i, r, want)
		}
	}
}

func TestRunEmptyIsUnsupported(t *testing.T) {
	dec1 := newSliceDecoder(0)
	dec2 := newSliceDecoder(0)

	_, err := Run[uint8, int](dec1, dec2, sumKernel, Options{})
	if err == nil {
		t.Fatal("Run() error = nil, want UnsupportedInput")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.UnsupportedInput {
		t.Errorf("err = %v, want *metrics.Error{Kind: UnsupportedInput}", err)
	}
}

func TestRunFrameCountMismatchIsInputMismatch(t *testing.T) {
	dec1 := newSliceDecoder(5)
	dec2 := newSliceDecoder(3)

	_, err := Run[uint8, int](dec1, dec2, sumKernel, Options{})
	if err == nil {
		t.Fatal("Run() error = nil, want InputMismatch")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.InputMismatch {
		t.Errorf("err = %v, want *metrics.Error{Kind: InputMismatch}", err)
	}
}

func TestRunFirstErrorWins(t *testing.T) {
	dec1 := newSliceDecoder(20)
	dec1.failAt = 5
	dec2 := newSliceDecoder(20)

	_, err := Run[uint8, int](dec1, dec2, sumKernel, Options{Workers: 2})
	if err == nil {
		t.Fatal("Run() error = nil, want the simulated decode failure")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.MalformedInput {
		t.Errorf("err = %v, want *metrics.Error{Kind: MalformedInput}", err)
	}
}

func TestRunKernelErrorPropagates(t *testing.T) {
	dec1 := newSliceDecoder(5)
	dec2 := newSliceDecoder(5)
	boom := errors.New("kernel exploded")
	kernel := func(f1, f2 *frame.Frame[uint8]) (int, error) {
		return 0, boom
	}

	_, err := Run[uint8, int](dec1, dec2, kernel, Options{})
	if err == nil {
		t.Fatal("Run() error = nil, want the wrapped kernel error")
	}
	merr, ok := err.(*metrics.Error)
	if !ok || merr.Kind != metrics.ProcessError {
		t.Errorf("err = %v, want *metrics.Error{Kind: ProcessError}", err)
	}
}

func TestRunFrameLimit(t *testing.T) {
	dec1 := newSliceDecoder(20)
	dec2 := newSliceDecoder(20)

	results, err := Run[uint8, int](dec1, dec2, sumKernel, Options{FrameLimit: 5})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 5 {
		t.Errorf("len(results) = %d, want 5", len(results))
	}
}
