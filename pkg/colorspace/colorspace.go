// Package colorspace provides shared color conversion utilities for the
// mineral sample analyzer.
package colorspace

import "math"

// RGBToHSV converts 8-bit RGB to HSV with H in [0,360), S and V in [0,1].
func RGBToHSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	v = max

	if max == 0 {
		s = 0
	} else {
		s = delta / max
	}

	if delta == 0 {
		h = 0
	} else {
		switch max {
		case rf:
			h = 60 * ((gf - bf) / delta)
		case gf:
			h = 60 * ((bf-rf)/delta + 2)
		default:
			h = 60 * ((rf-gf)/delta + 4)
		}
		if h < 0 {
			h += 360
		}
	}
	// Guard the half-open upper bound for inputs like (255, 0, epsilon).
	if h >= 360 {
		h -= 360
	}
	return h, s, v
}

// Luma returns the Rec.601 luma approximation of an 8-bit RGB triple,
// in [0,255]. Used by the focus and exposure diagnostics.
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// HueDistance returns the circular distance between two hues in degrees,
// always in [0,180].
func HueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}
