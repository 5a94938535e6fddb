// Package ir measures the decay of rendered or recorded impulse responses.
//
// Every metric is derived from the energy of the response, measured from
// its peak onward:
//
//   - RT60 from the T30 slope, falling back to T20
//   - EDT, the 0 to -10 dB slope extrapolated to -60 dB
//   - C50/C80 clarity and D50/D80 definition
//   - center time
//
// Decay slopes are least-squares fits on the Schroeder backward integral.
// Stereo responses additionally report the normalized correlation between
// channels, a rough measure of how wide the tail sounds.
//
//	a, err := ir.New(48000)
//	m, err := a.Analyze(response)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", m.RT60, m.C80)
package ir
