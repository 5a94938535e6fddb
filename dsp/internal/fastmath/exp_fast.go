//go:build fastmath

package fastmath

import (
	"github.com/meko-christian/algo-approx"
)

// Exp returns an approximation of e^x.
func Exp(x float64) float64 {
	return approx.FastExp(x)
}

// Sqrt returns an approximation of the square root of x.
func Sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return approx.FastSqrt(x)
}
