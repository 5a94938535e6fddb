package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/interp"
	"github.com/cwbudde/algo-reverb/dsp/osc"
	"github.com/cwbudde/algo-reverb/dsp/window"
)

const (
	shimmerWindowMs = 200
	// A -5 Hz sweep over 200 ms shortens the read distance by one ms per
	// ms, doubling playback speed: one octave up.
	shimmerRateHz = -5
)

// shimmer pitch-shifts the network output up an octave with two
// overlapping Hann grains and crossfades it against the dry input.
type shimmer struct {
	line   *delay.StereoLine
	phasor *osc.Phasor
	window *window.Table
}

func newShimmer(sampleRate float64) (*shimmer, error) {
	// grains play back at double speed, so reads take the cubic kernel
	line, err := delay.NewStereo(sampleRate, shimmerWindowMs, delay.WithMode(interp.Hermite))
	if err != nil {
		return nil, err
	}
	ph, err := osc.NewPhasor(sampleRate)
	if err != nil {
		return nil, err
	}
	win, err := window.NewTable(window.TypeHann, 1024)
	if err != nil {
		return nil, err
	}
	return &shimmer{line: line, phasor: ph, window: win}, nil
}

// process returns the injection signal for lanes 0 and 1, then records the
// network output (outL, outR) for later grains.
func (s *shimmer) process(inL, inR, outL, outR, amount float64) (float64, float64) {
	l, r := inL, inR

	if amount > 0 {
		var gl, gr float64
		p := s.phasor.Phase()
		for v := 0; v < 2; v++ {
			ph := core.Wrap(p + 0.5*float64(v))
			w := s.window.At(ph)
			vl, vr := s.line.Read(ph * shimmerWindowMs)
			gl += vl * w
			gr += vr * w
		}
		l = core.Lerp(inL, gl, amount)
		r = core.Lerp(inR, gr, amount)
	}

	s.line.Write(outL, outR)
	s.phasor.Process(shimmerRateHz)

	return l, r
}

func (s *shimmer) reset() {
	s.line.Reset()
	s.phasor.Reset()
}
