package biquad

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-reverb/dsp/core"
	archregistry "github.com/cwbudde/algo-reverb/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Stereo runs two channels through one set of coefficients.
type Stereo struct {
	Coefficients

	state [4]float64 // left d0, d1, right d0, d1
}

var (
	processStereoImpl     archregistry.ProcessStereoFn
	processStereoInitOnce sync.Once
)

// NewStereo returns a stereo pair with zero state.
func NewStereo(c Coefficients) *Stereo {
	return &Stereo{Coefficients: c}
}

// ProcessSample filters one frame.
func (s *Stereo) ProcessSample(l, r float64) (float64, float64) {
	st := &s.state

	yl := s.B0*l + st[0]
	st[0] = s.B1*l - s.A1*yl + st[1]
	st[1] = s.B2*l - s.A2*yl

	yr := s.B0*r + st[2]
	st[2] = s.B1*r - s.A1*yr + st[3]
	st[3] = s.B2*r - s.A2*yr

	return yl, yr
}

// ProcessBlock filters left and right in place with the current
// coefficients. Zero-alloc.
func (s *Stereo) ProcessBlock(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("biquad: channel length mismatch: %d != %d", len(left), len(right))
	}
	processStereoInitOnce.Do(initProcessStereoKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}
	processStereoImpl(coeffs, &s.state, left, right)
	s.FlushDenormals()

	return nil
}

// SetCoefficients swaps coefficients and keeps state.
func (s *Stereo) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// FlushDenormals zeroes state values below the normalized range.
func (s *Stereo) FlushDenormals() {
	for i := range s.state {
		s.state[i] = core.FlushDenormals(s.state[i])
	}
}

// Reset clears both channels.
func (s *Stereo) Reset() {
	s.state = [4]float64{}
}

func initProcessStereoKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no stereo kernel registered (missing generic fallback?)")
	}

	if entry.ProcessStereo == nil {
		panic("biquad: selected kernel missing ProcessStereo")
	}

	processStereoImpl = entry.ProcessStereo
}
