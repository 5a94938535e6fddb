package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/measure/ir"
)

func decay(sampleRate, rt60, seconds float64) []float64 {
	h := make([]float64, int(sampleRate*seconds))
	k := 6.9078 / rt60
	for i := range h {
		h[i] = math.Exp(-k * float64(i) / sampleRate)
	}
	return h
}

func ExampleAnalyzer_Analyze() {
	a, err := ir.New(48000)
	if err != nil {
		panic(err)
	}

	m, err := a.Analyze(decay(48000, 1, 3))
	if err != nil {
		panic(err)
	}

	fmt.Printf("RT60 = %.2f s\n", m.RT60)
	fmt.Printf("EDT  = %.2f s\n", m.EDT)
	fmt.Printf("C80  = %.1f dB\n", m.C80)
	fmt.Printf("D50  = %.3f\n", m.D50)
	// Output:
	// RT60 = 1.00 s
	// EDT  = 1.00 s
	// C80  = 3.1 dB
	// D50  = 0.499
}

func ExampleAnalyzer_Schroeder() {
	const fs = 48000.0
	a, err := ir.New(fs)
	if err != nil {
		panic(err)
	}

	curve, err := a.Schroeder(decay(fs, 0.5, 1.5))
	if err != nil {
		panic(err)
	}

	for _, ms := range []float64{0, 250, 500, 750, 1000} {
		fmt.Printf("t=%4.0fms: %6.1f dB\n", ms, curve[int(ms*0.001*fs)])
	}
	// Output:
	// t=   0ms:    0.0 dB
	// t= 250ms:  -30.0 dB
	// t= 500ms:  -60.0 dB
	// t= 750ms:  -90.0 dB
	// t=1000ms: -120.0 dB
}
