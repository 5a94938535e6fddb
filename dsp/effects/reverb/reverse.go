package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/osc"
)

// reverser plays the predelay line backwards with two voices. Voice a
// sweeps its read distance over [0, 2·time) once per predelay period and
// voice b trails it by half a sweep; their gains always sum to one.
type reverser struct {
	phasor *osc.Phasor
	minMs  float64
}

func newReverser(sampleRate, minMs float64) (*reverser, error) {
	ph, err := osc.NewPhasor(sampleRate)
	if err != nil {
		return nil, err
	}
	return &reverser{phasor: ph, minMs: minMs}, nil
}

// gains returns the two voice positions (in units of time) and gains.
func (r *reverser) gains(timeMs float64) (a, b, ga, gb float64) {
	a = 2 * r.phasor.Phase()
	b = math.Mod(a+1, 2)

	xf := timeMs / r.minMs
	up := math.Min(a*xf, 1)
	down := core.Clamp((1/xf+1-a)*xf, 0, 1)
	ga = up * down
	gb = 1 - ga

	return a, b, ga, gb
}

func (r *reverser) read(line *delay.StereoLine, timeMs float64) (float64, float64) {
	a, b, ga, gb := r.gains(timeMs)

	var outL, outR float64
	if ga != 0 {
		l, rr := line.Read(a * timeMs)
		outL += l * ga
		outR += rr * ga
	}
	if gb != 0 {
		l, rr := line.Read(b * timeMs)
		outL += l * gb
		outR += rr * gb
	}

	return outL, outR
}

func (r *reverser) advance(timeMs float64) {
	r.phasor.Process(1000 / timeMs)
}

func (r *reverser) reset() {
	r.phasor.Reset()
}
