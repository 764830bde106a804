/*
NAME
  de2000.go

DESCRIPTION
  de2000.go implements the CIEDE2000 color-difference formula (Yang, Ming
  and Yu, 2012) with the (kL,kC,kH)=(0.65,1.0,4.0) weights spec §4.6
  specifies.

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package ciede2000

import "math"

const (
	kSubL = 0.65
	kSubC = 1.0
	kSubH = 4.0
)

// deltaE2000 returns the perceptual color distance between two L*a*b*
// points, per the CIEDE2000 formula.
func deltaE2000(c1, c2 lab) float64 {
	lBar := (c1.L + c2.L) / 2.0
	c1mag := math.Hypot(c1.A, c1.B)
	c2mag := math.Hypot(c2.A, c2.B)
	cBar := (c1mag + c2mag) / 2.0

	cBar7 := math.Pow(cBar, 7)
	g := 0.5 * (1.0 - math.Sqrt(cBar7/(cBar7+math.Pow(25, 7))))

	a1p := c1.A * (1.0 + g)
	a2p := c2.A * (1.0 + g)

	c1p := math.Hypot(a1p, c1.B)
	c2p := math.Hypot(a2p, c2.B)
	cBarP := (c1p + c2p) / 2.0

	h1p := hPrime(a1p, c1.B)
	h2p := hPrime(a2p, c2.B)

	deltaLp := c2.L - c1.L
	deltaCp := c2p - c1p

	var deltaHpAngle float64
	switch {
	case c1p*c2p == 0:
		deltaHpAngle = 0
	case math.Abs(h1p-h2p) <= math.Pi:
		deltaHpAngle = h2p - h1p
	case h2p <= h1p:
		deltaHpAngle = h2p - h1p + 2*math.Pi
	default:
		deltaHpAngle = h2p - h1p - 2*math.Pi
	}
	deltaUpcaseHp := 2.0 * math.Sqrt(c1p*c2p) * math.Sin(deltaHpAngle/2.0)

	var hBarP float64
	switch {
	case c1p*c2p == 0:
		hBarP = h1p + h2p
	case math.Abs(h1p-h2p) <= math.Pi:
		hBarP = (h1p + h2p) / 2.0
	case h1p+h2p < 2*math.Pi:
		hBarP = (h1p + h2p + 2*math.Pi) / 2.0
	default:
		hBarP = (h1p + h2p - 2*math.Pi) / 2.0
	}

	t := 1.0 - 0.17*math.Cos(hBarP-math.Pi/6.0) +
		0.24*math.Cos(2.0*hBarP) +
		0.32*math.Cos(3.0*hBarP+math.Pi/30.0) -
		0.20*math.Cos(4.0*hBarP-7.0*math.Pi/20.0)

	sSubL := 1.0 + (0.015*(lBar-50.0)*(lBar-50.0))/math.Sqrt(20.0+(lBar-50.0)*(lBar-50.0))
	sSubC := 1.0 + 0.045*cBarP
	sSubH := 1.0 + 0.015*cBarP*t

	cBarP7 := math.Pow(cBarP, 7)
	rSubT := -2.0 * math.Sqrt(cBarP7/(cBarP7+math.Pow(25, 7))) *
		math.Sin(deg2rad(60.0*math.Exp(-math.Pow((rad2deg(hBarP)-275.0)/25.0, 2))))

	lTerm := deltaLp / (kSubL * sSubL)
	cTerm := deltaCp / (kSubC * sSubC)
	hTerm := deltaUpcaseHp / (kSubH * sSubH)

	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rSubT*cTerm*hTerm)
}

// hPrime returns atan2(b,a) normalized to [0, 2*pi).
func hPrime(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }
