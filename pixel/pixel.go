/*
NAME
  pixel.go

DESCRIPTION
  pixel.go defines the generic sample type that every metric kernel in
  vqmetrics is parametric over, plus the numeric casts between samples and
  the wider integer types the kernels accumulate into.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package pixel provides the generic sample type used across vqmetrics:
// uint8 for 8-bit video, uint16 for 9-16 bit video. Bit depth itself is
// always carried as a separate scalar, since high-bit-depth samples
// occupy only the low bits of a 16-bit word.
package pixel

// Sample is the set of integer widths a video plane may be stored in.
// 8-bit video uses Sample = uint8; 9-16 bit video uses Sample = uint16.
type Sample interface {
	~uint8 | ~uint16
}

// ToInt32 widens a sample to a signed 32-bit integer. This is the type
// every kernel performs its arithmetic in before narrowing back down,
// since intermediate differences (e.g. a-b for PSNR) can be negative.
func ToInt32[T Sample](v T) int32 { return int32(v) }

// ToUint32 widens a sample to an unsigned 32-bit integer.
func ToUint32[T Sample](v T) uint32 { return uint32(v) }

// ToInt16 narrows/widens a sample to a signed 16-bit integer. uint16
// samples above 32767 wrap to negative values.
func ToInt16[T Sample](v T) int16 { return int16(v) }

// FromInt32 narrows a signed 32-bit value back down to a sample, clamping
// to the representable range [0, max]. Used by the chroma realignment
// filter, whose 6-tap convolution can overshoot before rounding.
func FromInt32[T Sample](v int32, max int32) T {
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return T(v)
}

// MaxForDepth returns the maximum representable sample value for the
// given bit depth, i.e. 2^bitDepth - 1.
func MaxForDepth(bitDepth int) int {
	return (1 << uint(bitDepth)) - 1
}
