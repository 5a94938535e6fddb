package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-reverb/dsp/internal/fastmath"
)

const (
	satThreshold = 0.75
	satReleaseMs = 100
	satRampHz    = 3
	satOffBelow  = 1e-4
)

// saturation fades a soft clipper in while the network runs hot and back
// out once it settles. Below satOffBelow the clipper is bypassed.
type saturation struct {
	peak    float64
	release float64
	ramp    *onepole.Lowpass
}

func newSaturation(sampleRate float64) (*saturation, error) {
	ramp, err := onepole.NewLowpass(sampleRate, satRampHz)
	if err != nil {
		return nil, err
	}
	return &saturation{
		release: math.Exp(-1 / (satReleaseMs * 0.001 * sampleRate)),
		ramp:    ramp,
	}, nil
}

func (s *saturation) process(x core.Quad) core.Quad {
	s.peak = core.FlushDenormals(math.Max(x.MaxAbs(), s.peak*s.release))

	target := 0.0
	if s.peak > satThreshold {
		target = 1
	}

	g := s.ramp.Process(target)
	if target == 0 && g < satOffBelow {
		s.ramp.Set(0)
	}
	if g < satOffBelow {
		return x
	}

	var y core.Quad
	for i, v := range x {
		y[i] = v*(1-g) + fastmath.SoftClip(v)*g
	}
	return y
}

// active reports whether the clipper is currently blended in.
func (s *saturation) active() bool {
	return s.ramp.Value() >= satOffBelow
}

func (s *saturation) reset() {
	s.peak = 0
	s.ramp.Reset()
}
