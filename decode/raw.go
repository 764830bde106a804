/*
NAME
  raw.go

DESCRIPTION
  raw.go implements a reference Decoder over a raw planar byte stream (the
  layout ffmpeg's "rawvideo" muxer and the C ABI's frame buffers both
  use): fixed-size Y/U/V planes read back to back, one frame at a time.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package decode

import (
	"fmt"
	"io"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/pixel"
)

// RawDecoder reads raw planar Y/U/V frames from an io.Reader. Each
// frame's planes are expected back to back, in Y, U, V order, with no
// stride padding; samples are little-endian for 9-16 bit depths.
type RawDecoder[T pixel.Sample] struct {
	r        io.Reader
	details  VideoDetails
	sampleSz int
}

// NewRawDecoder constructs a RawDecoder over r using the given video
// details to determine frame and plane sizes.
func NewRawDecoder[T pixel.Sample](r io.Reader, details VideoDetails) *RawDecoder[T] {
	sampleSz := 1
	if details.BitDepth > 8 {
		sampleSz = 2
	}
	return &RawDecoder[T]{r: r, details: details, sampleSz: sampleSz}
}

// VideoDetails implements Decoder.
func (d *RawDecoder[T]) VideoDetails() VideoDetails { return d.details }

// BitDepth implements Decoder.
func (d *RawDecoder[T]) BitDepth() int { return d.details.BitDepth }

// ReadFrame implements Decoder, returning (nil, nil) once the stream is
// exhausted at a frame boundary (no bytes left for the luma plane). A
// stream that ends inside a frame is an error.
func (d *RawDecoder[T]) ReadFrame() (*frame.Frame[T], error) {
	f := frame.NewFrame[T](d.details.Width, d.details.Height, d.details.ChromaSampling, d.details.BitDepth)

	if err := d.readPlane(f.Y(), true); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading luma plane: %w", err)
	}
	if d.details.ChromaSampling != frame.Sampling400 {
		if err := d.readPlane(f.U(), false); err != nil {
			return nil, fmt.Errorf("reading Cb plane: %w", err)
		}
		if err := d.readPlane(f.V(), false); err != nil {
			return nil, fmt.Errorf("reading Cr plane: %w", err)
		}
	}
	return f, nil
}

func (d *RawDecoder[T]) readPlane(p *frame.Plane[T], first bool) error {
	buf := make([]byte, p.Width*p.Height*d.sampleSz)
	n, err := io.ReadFull(d.r, buf)
	if err != nil {
		if first && (err == io.EOF || err == io.ErrUnexpectedEOF) && n == 0 {
			return io.EOF
		}
		return err
	}
	for i := 0; i < p.Width*p.Height; i++ {
		var v uint32
		if d.sampleSz == 1 {
			v = uint32(buf[i])
		} else {
			v = uint32(buf[2*i]) | uint32(buf[2*i+1])<<8
		}
		p.Data[i] = T(v)
	}
	return nil
}
