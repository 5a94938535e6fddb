package fastmath

import "math"

// Atan approximates math.Atan to within about 0.0015 rad. It is odd,
// monotonic and bounded by ±π/2.
func Atan(x float64) float64 {
	ax := math.Abs(x)
	inv := ax > 1
	if inv {
		ax = 1 / ax
	}

	r := math.Pi/4*ax + ax*(1-ax)*(0.2447+0.0663*ax)
	if inv {
		r = math.Pi/2 - r
	}
	if x < 0 {
		return -r
	}
	return r
}

// SoftClip maps x onto (-1, 1) with a slope of about 1 at the origin.
func SoftClip(x float64) float64 {
	return (2 / math.Pi) * Atan(math.Pi/2*x)
}
