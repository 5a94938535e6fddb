package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/filter/biquad"
)

func ExampleStereo_ProcessBlock() {
	s := biquad.NewStereo(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	left := []float64{1, 0, 0, 0}
	right := []float64{0, 0, 1, 0}
	if err := s.ProcessBlock(left, right); err != nil {
		panic(err)
	}
	fmt.Printf("%.3f\n%.3f\n", left, right)
	// Output:
	// [0.250 0.550 0.350 0.048]
	// [0.000 0.000 0.250 0.550]
}
