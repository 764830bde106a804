/*
NAME
  lab.go

DESCRIPTION
  lab.go converts BT.709 studio-range YUV samples to CIE L*a*b*, the color
  space CIEDE2000 measures distance in, per spec §4.6.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

// Package ciede2000 computes the CIEDE2000 perceptual color-difference
// metric between two video frames or two videos.
package ciede2000

import "math"

// lab is a point in CIE L*a*b* space.
type lab struct {
	L, A, B float64
}

const (
	kappa   = 24389.0 / 27.0
	epsilon = 216.0 / 24389.0
)

// yuvToLab converts one BT.709 studio-range YUV sample triple, scaled for
// bitDepth, into CIE L*a*b*.
func yuvToLab(y, u, v float64, bitDepth int) lab {
	r, g, b := yuvToRGB(y, u, v, bitDepth)
	x, yy, z := rgbToXYZ(r, g, b)
	return xyzToLab(x, yy, z)
}

// yuvToRGB converts one BT.709 studio-range YUV sample triple to
// gamma-encoded RGB, nominally in [0,1] (not clamped), per spec §4.6.
func yuvToRGB(y, u, v float64, bitDepth int) (r, g, b float64) {
	scale := float64(int(1) << uint(bitDepth-8))
	yy := (y - 16.0*scale) / (219.0 * scale)
	uu := (u - 128.0*scale) / (224.0 * scale)
	vv := (v - 128.0*scale) / (224.0 * scale)

	r = yy + 1.28033*vv
	g = yy - 0.21482*uu - 0.38059*vv
	b = yy + 2.12798*uu
	return
}

// rgbToXYZ converts gamma-encoded sRGB in [0,1] to CIE XYZ via the
// standard sRGB primaries matrix, applying the inverse gamma first.
func rgbToXYZ(r, g, b float64) (x, y, z float64) {
	r = srgbInverseGamma(r)
	g = srgbInverseGamma(g)
	b = srgbInverseGamma(b)

	x = 0.4124564390896921*r + 0.357576077643909*g + 0.18043748326639894*b
	y = 0.21267285140562248*r + 0.715152155287818*g + 0.07217499330655958*b
	z = 0.019333895582329317*r + 0.119192025881303*g + 0.9503040785363677*b
	return
}

func srgbInverseGamma(c float64) float64 {
	if c > 10.0/255.0 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

// xyzToLab converts CIE XYZ (normalized to the D65 white point) to CIE
// L*a*b*.
func xyzToLab(x, y, z float64) lab {
	const (
		xn = 0.9504559270516716
		yn = 1.0
		zn = 0.9298955583468168
	)
	fx := xyzToLabMap(x / xn)
	fy := xyzToLabMap(y / yn)
	fz := xyzToLabMap(z / zn)

	return lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

func xyzToLabMap(c float64) float64 {
	if c > epsilon {
		return math.Cbrt(c)
	}
	return (kappa*c + 16.0) / 116.0
}
