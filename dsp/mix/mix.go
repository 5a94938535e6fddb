// Package mix provides the constant-power dry/wet crossfade.
package mix

import "math"

// Gains returns the quarter-cosine dry and wet gains for mix in [0,1].
// dry² + wet² = 1 across the range.
func Gains(mix float64) (dry, wet float64) {
	return math.Cos(mix * math.Pi / 2), math.Cos((1 - mix) * math.Pi / 2)
}

// Process blends a dry and a wet frame.
func Process(dryL, dryR, wetL, wetR, mix float64) (float64, float64) {
	dry, wet := Gains(mix)
	return dryL*dry + wetL*wet, dryR*dry + wetR*wet
}

// ProcessBlock blends wet into dry in place at a constant mix.
func ProcessBlock(dryL, dryR, wetL, wetR []float64, mix float64) {
	dry, wet := Gains(mix)
	n := min(len(dryL), len(dryR), len(wetL), len(wetR))
	for i := 0; i < n; i++ {
		dryL[i] = dryL[i]*dry + wetL[i]*wet
		dryR[i] = dryR[i]*dry + wetR[i]*wet
	}
}
