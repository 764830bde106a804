//go:build cgo

/*
NAME
  capi.go

DESCRIPTION
  capi.go exposes vqmetrics' PSNR kernel to C callers, per spec §6: raw
  planar buffer pointers and strides in, a heap-allocated result record
  out, with an explicit free function since cgo exports cannot return
  Go-managed memory to C.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package capi is vqmetrics' C ABI: a thin, cgo-gated wrapper that lets a
// C caller hand over two raw planar frame buffers and get back a single
// metric result without depending on Go's calling convention or garbage
// collector.
package capi

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	double y;
	double u;
	double v;
	double avg;
} vqm_planar_result;
*/
import "C"

import (
	"unsafe"

	"github.com/ausocean/vqmetrics/frame"
	"github.com/ausocean/vqmetrics/metrics"
	"github.com/ausocean/vqmetrics/metrics/psnr"
	"github.com/ausocean/vqmetrics/pixel"
)

// sampleWidth returns the byte width of one sample at the given bit
// depth: 1 for 8-bit, 2 for 9-16 bit, matching the C caller's buffer
// layout.
func sampleWidth(bitDepth C.int) int {
	if bitDepth > 8 {
		return 2
	}
	return 1
}

// buildPlane reads a raw byte buffer of width*height samples (1 or 2
// bytes each, little-endian) into a new Plane.
func buildPlane[T pixel.Sample](ptr unsafe.Pointer, width, height, stride int, sampleSz int) *frame.Plane[T] {
	p := frame.NewPlane[T](width, height)
	base := (*[1 << 30]byte)(ptr)[: stride*height*sampleSz : stride*height*sampleSz]
	for y := 0; y < height; y++ {
		rowStart := y * stride * sampleSz
		for x := 0; x < width; x++ {
			off := rowStart + x*sampleSz
			var v uint32
			if sampleSz == 1 {
				v = uint32(base[off])
			} else {
				v = uint32(base[off]) | uint32(base[off+1])<<8
			}
			p.Set(x, y, T(v))
		}
	}
	return p
}

// allocResult heap-allocates a vqm_planar_result via C.malloc and fills it
// from p; the caller owns the returned pointer and must release it with
// VqmFreeResult.
func allocResult(p metrics.Planar) *C.vqm_planar_result {
	r := (*C.vqm_planar_result)(C.malloc(C.size_t(unsafe.Sizeof(C.vqm_planar_result{}))))
	r.y = C.double(p.Y)
	r.u = C.double(p.U)
	r.v = C.double(p.V)
	r.avg = C.double(p.Avg)
	return r
}

//export VqmPSNRFrame
func VqmPSNRFrame(
	width, height, bitDepth C.int,
	chromaSampling C.int,
	y1, u1, v1 unsafe.Pointer,
	y2, u2, v2 unsafe.Pointer,
	strideY, strideC C.int,
) *C.vqm_planar_result {
	bd := int(bitDepth)
	sw := sampleWidth(bitDepth)
	sampling := frame.Sampling(chromaSampling)

	if bd > 8 {
		return psnrFrame16(int(width), int(height), bd, sampling, y1, u1, v1, y2, u2, v2, int(strideY), int(strideC), sw)
	}
	return psnrFrame8(int(width), int(height), bd, sampling, y1, u1, v1, y2, u2, v2, int(strideY), int(strideC), sw)
}

func psnrFrame8(width, height, bitDepth int, sampling frame.Sampling, y1, u1, v1, y2, u2, v2 unsafe.Pointer, strideY, strideC, sw int) *C.vqm_planar_result {
	cw, ch := sampling.ChromaDims(width, height)
	f1 := &frame.Frame[uint8]{
		Planes: [3]*frame.Plane[uint8]{
			buildPlane[uint8](y1, width, height, strideY, sw),
			buildPlane[uint8](u1, cw, ch, strideC, sw),
			buildPlane[uint8](v1, cw, ch, strideC, sw),
		},
		BitDepth:  bitDepth,
		ChromaFmt: sampling,
	}
	f2 := &frame.Frame[uint8]{
		Planes: [3]*frame.Plane[uint8]{
			buildPlane[uint8](y2, width, height, strideY, sw),
			buildPlane[uint8](u2, cw, ch, strideC, sw),
			buildPlane[uint8](v2, cw, ch, strideC, sw),
		},
		BitDepth:  bitDepth,
		ChromaFmt: sampling,
	}
	fr, err := psnr.Frame8(f1, f2, bitDepth)
	if err != nil {
		return nil
	}
	return allocResult(psnr.Frame(fr))
}

func psnrFrame16(width, height, bitDepth int, sampling frame.Sampling, y1, u1, v1, y2, u2, v2 unsafe.Pointer, strideY, strideC, sw int) *C.vqm_planar_result {
	cw, ch := sampling.ChromaDims(width, height)
	f1 := &frame.Frame[uint16]{
		Planes: [3]*frame.Plane[uint16]{
			buildPlane[uint16](y1, width, height, strideY, sw),
			buildPlane[uint16](u1, cw, ch, strideC, sw),
			buildPlane[uint16](v1, cw, ch, strideC, sw),
		},
		BitDepth:  bitDepth,
		ChromaFmt: sampling,
	}
	f2 := &frame.Frame[uint16]{
		Planes: [3]*frame.Plane[uint16]{
			buildPlane[uint16](y2, width, height, strideY, sw),
			buildPlane[uint16](u2, cw, ch, strideC, sw),
			buildPlane[uint16](v2, cw, ch, strideC, sw),
		},
		BitDepth:  bitDepth,
		ChromaFmt: sampling,
	}
	fr, err := psnr.Frame16(f1, f2, bitDepth)
	if err != nil {
		return nil
	}
	return allocResult(psnr.Frame(fr))
}

//export VqmFreeResult
func VqmFreeResult(r *C.vqm_planar_result) {
	if r != nil {
		C.free(unsafe.Pointer(r))
	}
}
