/*
NAME
  dct.go

DESCRIPTION
  dct.go implements the daala-style 8x8 fixed-point integer DCT PSNR-HVS
  transforms each block with, per spec §4.5.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package psnrhvs

// odDctRshift divides a by 2^b, truncating toward zero (a negative a is
// biased by 2^b-1 before the arithmetic shift), matching the reference
// fixed-point butterfly's rounding.
func odDctRshift(a int32, b uint) int32 {
	return (int32(uint32(a)>>(32-b)) + a) >> b
}

// odBinFdct8 is the 8-point 1-D forward DCT butterfly, operating on x in
// place. The multiplier/shift pairs are the exact fixed-point constants
// from the reference transform.
func odBinFdct8(x *[8]int32) {
	var t [8]int32
	copy(t[:], x[:])

	t0 := t[0] + t[7]
	t7 := t[0] - t[7]
	t3 := t[3] + t[4]
	t4 := t[3] - t[4]
	t1 := t[1] + t[6]
	t6 := t[1] - t[6]
	t2 := t[2] + t[5]
	t5 := t[2] - t[5]

	t8_0 := t0 + t3
	t8_3 := t0 - t3
	t8_1 := t1 + t2
	t8_2 := t1 - t2

	x[0] = t8_0 + t8_1
	x[4] = t8_0 - t8_1
	x[2] = t8_3 + mulShift(t8_2, 21895, 14)
	x[6] = mulShift(t8_3, 15137, 13) - t8_2

	t7 = t7 - mulShift(t6, 3227, 14)
	t6 = t6 + mulShift(t7, 6393, 14)
	t7 = t7 - mulShift(t6, 3227, 14)

	t4 = -(t4 + mulShift(t5, 2485, 12))
	t5 = t5 - mulShift(t4, 18205, 14)
	t4 = -(t4 + mulShift(t5, 2485, 12))

	tt7 := t7 + t4
	tt4 := t7 - t4
	tt6 := t6 + t5
	tt5 := t6 - t5

	x[1] = tt7 + mulShift(tt6, 13573, 14)
	x[7] = mulShift(tt7, 11585, 13) - tt6
	x[5] = tt4 + mulShift(tt5, 11585, 13)
	x[3] = mulShift(tt4, 19195, 14) - tt5
}

// mulShift computes a*mul/2^shiftBits, truncated toward zero by
// odDctRshift, replicating od_mul_qconst's 32-bit intermediate.
func mulShift(a int32, mul int32, shiftBits uint) int32 {
	return odDctRshift(a*mul, shiftBits)
}

// odBinFdct8x8 runs the separable 2-D transform: rows then columns, with
// the intermediate transposed between passes.
func odBinFdct8x8(block *[8][8]int32) {
	var tmp [8][8]int32
	for i := 0; i < 8; i++ {
		row := block[i]
		odBinFdct8(&row)
		tmp[i] = row
	}
	var cols [8][8]int32
	for j := 0; j < 8; j++ {
		var col [8]int32
		for i := 0; i < 8; i++ {
			col[i] = tmp[i][j]
		}
		odBinFdct8(&col)
		for i := 0; i < 8; i++ {
			cols[i][j] = col[i]
		}
	}
	*block = cols
}
