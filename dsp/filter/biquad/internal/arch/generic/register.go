package generic

import (
	"github.com/cwbudde/algo-reverb/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:          "generic",
		SIMDLevel:     cpu.SIMDNone,
		Priority:      0,
		ProcessStereo: processStereo,
	})
}

// processStereo runs both channels through one loop.
func processStereo(c registry.Coefficients, state *[4]float64, left, right []float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	l0, l1, r0, r1 := state[0], state[1], state[2], state[3]

	right = right[:len(left)]
	for i, xl := range left {
		xr := right[i]

		yl := b0*xl + l0
		l0 = b1*xl - a1*yl + l1
		l1 = b2*xl - a2*yl

		yr := b0*xr + r0
		r0 = b1*xr - a1*yr + r1
		r1 = b2*xr - a2*yr

		left[i] = yl
		right[i] = yr
	}

	state[0], state[1], state[2], state[3] = l0, l1, r0, r1
}
