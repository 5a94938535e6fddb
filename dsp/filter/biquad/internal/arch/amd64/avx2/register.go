//go:build amd64 && !purego

package avx2

import (
	"github.com/cwbudde/algo-reverb/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:          "avx2",
		SIMDLevel:     cpu.SIMDAVX2,
		Priority:      20,
		ProcessStereo: processStereo,
	})
}

// processStereo is a 2x time-unrolled stereo kernel selected for
// AVX2-capable CPUs.
func processStereo(c registry.Coefficients, state *[4]float64, left, right []float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	l0, l1, r0, r1 := state[0], state[1], state[2], state[3]

	n := len(left)
	right = right[:n]

	i := 0
	for ; i+1 < n; i += 2 {
		xl0, xr0 := left[i], right[i]
		yl0 := b0*xl0 + l0
		yr0 := b0*xr0 + r0
		l0n := b1*xl0 - a1*yl0 + l1
		r0n := b1*xr0 - a1*yr0 + r1
		l1n := b2*xl0 - a2*yl0
		r1n := b2*xr0 - a2*yr0

		xl1, xr1 := left[i+1], right[i+1]
		yl1 := b0*xl1 + l0n
		yr1 := b0*xr1 + r0n
		l0 = b1*xl1 - a1*yl1 + l1n
		r0 = b1*xr1 - a1*yr1 + r1n
		l1 = b2*xl1 - a2*yl1
		r1 = b2*xr1 - a2*yr1

		left[i], left[i+1] = yl0, yl1
		right[i], right[i+1] = yr0, yr1
	}

	if i < n {
		xl, xr := left[i], right[i]
		yl := b0*xl + l0
		yr := b0*xr + r0
		l0 = b1*xl - a1*yl + l1
		r0 = b1*xr - a1*yr + r1
		l1 = b2*xl - a2*yl
		r1 = b2*xr - a2*yr
		left[i], right[i] = yl, yr
	}

	state[0], state[1], state[2], state[3] = l0, l1, r0, r1
}
