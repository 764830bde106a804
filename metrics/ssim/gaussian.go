/*
NAME
  gaussian.go

DESCRIPTION
  gaussian.go builds the fixed-point separable Gaussian window SSIM
  convolves with, per spec §4.3.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package ssim

import "math"

// buildGaussianKernel constructs a 1-D Gaussian kernel at fixed-point
// precision kernelWeight (2^8 for SSIM, 2^10 for MS-SSIM), truncated so
// the first omitted coefficient would contribute less than 0.5/weight,
// and capped so the kernel never exceeds maxLen samples on a side.
func buildGaussianKernel(sigma float64, maxLen int, kernelWeight int) []int64 {
	scale := 1.0 / (math.Sqrt(2.0*math.Pi) * sigma)
	nhisigma2 := -0.5 / (sigma * sigma)

	s := math.Sqrt(0.5*math.Pi) * sigma * (1.0 / float64(kernelWeight))
	var length int
	if s >= 1.0 {
		length = 0
	} else {
		length = int(math.Floor(sigma * math.Sqrt(-2.0*math.Log(s))))
	}
	kernelLen := length
	if kernelLen >= maxLen {
		kernelLen = maxLen - 1
	}

	kernelSize := (kernelLen << 1) | 1
	kernel := make([]int64, kernelSize)
	var sum int64
	for ci := 1; ci <= kernelLen; ci++ {
		val := float64(kernelWeight)*scale*math.Exp(nhisigma2*float64(ci*ci)) + 0.5
		iv := int64(val)
		kernel[kernelLen-ci] = iv
		kernel[kernelLen+ci] = iv
		sum += iv
	}
	kernel[kernelLen] = int64(kernelWeight) - (sum << 1)
	return kernel
}
