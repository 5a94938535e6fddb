// Package tilt implements a tilt equalizer modelled on an op-amp
// bridged-T RC network: one potentiometer trades low-frequency gain for
// high-frequency gain around a fixed pivot.
//
// The analog transfer function is evaluated in closed form from the part
// values and the pot position, mapped to z with the bilinear transform and
// run as a stereo DF2T biquad.
package tilt

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/filter/biquad"
)

// Network part values.
const (
	c1    = 5.6e-9
	c2    = 5.6e-9
	r1    = 2250.0
	r2    = 2250.0
	rf1   = 47000.0
	rf2   = 47000.0
	rTilt = 140000.0
)

// Pot positions are kept off the end stops.
const (
	minTilt = 1e-4
	maxTilt = 1 - 1e-4
)

// Flat is the pot position with a unity response.
const Flat = 0.5

// Filter is a stereo tilt equalizer.
type Filter struct {
	sampleRate float64
	s1, s2     float64 // bilinear scale for the s and s^2 terms: T/2, T^2/4
	biquad     *biquad.Stereo

	lastTilt   float64
	haveCoeffs bool
}

// New returns a tilt filter for sampleRate, starting flat.
func New(sampleRate float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("tilt: sample rate must be > 0: %f", sampleRate)
	}

	t := 1 / sampleRate
	f := &Filter{
		sampleRate: sampleRate,
		s1:         t / 2,
		s2:         t * t / 4,
		biquad:     biquad.NewStereo(biquad.Coefficients{B0: 1}),
	}
	f.retune(Flat)

	return f, nil
}

// Process filters one frame. tilt is the pot position in [0,1]:
// 0 is full low shelf, 1 is full high shelf, 0.5 is flat.
func (f *Filter) Process(l, r, tilt float64) (float64, float64) {
	f.retune(tilt)
	l, r = f.biquad.ProcessSample(l, r)
	f.biquad.FlushDenormals()
	return l, r
}

// ProcessBlock filters left and right in place at a constant tilt.
func (f *Filter) ProcessBlock(left, right []float64, tilt float64) error {
	f.retune(tilt)
	return f.biquad.ProcessBlock(left, right)
}

// Coefficients returns the normalized z-domain coefficients for tilt.
func (f *Filter) Coefficients(tilt float64) biquad.Coefficients {
	b, a := analog(clampTilt(tilt))
	bz := f.bilinear(b)
	az := f.bilinear(a)

	return biquad.Coefficients{
		B0: bz[0] / az[0],
		B1: bz[1] / az[0],
		B2: bz[2] / az[0],
		A1: az[1] / az[0],
		A2: az[2] / az[0],
	}
}

// Reset clears the filter history.
func (f *Filter) Reset() {
	f.biquad.Reset()
}

// SampleRate returns the configured rate.
func (f *Filter) SampleRate() float64 {
	return f.sampleRate
}

// retune recomputes coefficients when tilt moved since the last call.
func (f *Filter) retune(tilt float64) {
	if f.haveCoeffs && tilt == f.lastTilt {
		return
	}
	f.biquad.SetCoefficients(f.Coefficients(tilt))
	f.lastTilt = tilt
	f.haveCoeffs = true
}

func clampTilt(tilt float64) float64 {
	if !(tilt >= minTilt) {
		return minTilt
	}
	return core.Clamp(tilt, minTilt, maxTilt)
}

// analog returns the s-domain numerator and denominator, highest power
// first. The stage is inverting; the numerator sign is flipped so the
// flat position is H(s) = 1.
func analog(tilt float64) (b, a [3]float64) {
	ra := rTilt * tilt
	rb := rTilt * (1 - tilt)

	const (
		c1c2       = c1 * c2
		c1c2r1     = c1c2 * r1
		c1c2r1r2   = c1c2r1 * r2
		c1c2r2rf2  = c1c2 * r2 * rf2
		c1c2rf1rf2 = c1c2 * rf1 * rf2
		c2r2       = c2 * r2
		c1r1       = c1 * r1
		c1rf2      = c1 * rf2
		c2rf1      = c2 * rf1
	)

	b[0] = c1c2r2rf2*rf1 + c1c2r2rf2*rb + c1c2r1r2*rb + c1c2r2rf2*r1 + c1c2rf1rf2*ra + c1c2r2rf2*ra
	b[1] = c1rf2*rf1 + c1rf2*rb + c2r2*rb + c2r2*rf2 + c1r1*rb + c1r1*rf2 + c1rf2*ra
	b[2] = rb + rf2

	a[0] = c1c2rf1rf2*rb + c1c2r1*rf1*rb + c1c2rf1rf2*r1 + c1c2r1r2*rf1 + c1c2r1*rf1*ra + c1c2r1r2*ra
	a[1] = c2rf1*rb + c2rf1*rf2 + c2r2*rf1 + c1r1*rf1 + c2rf1*ra + c2r2*ra + c1r1*ra
	a[2] = rf1 + ra

	return b, a
}

// bilinear maps s-domain coefficients to z, unnormalized.
func (f *Filter) bilinear(x [3]float64) [3]float64 {
	x1 := x[1] * f.s1
	x2 := x[2] * f.s2

	return [3]float64{
		x[0] + x1 + x2,
		-2*x[0] + 2*x2,
		x[0] - x1 + x2,
	}
}
