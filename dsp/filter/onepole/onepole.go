// Package onepole provides first-order recursive filters: a scalar
// lowpass used for envelope and gain smoothing, and four-lane lowpass and
// DC-blocking stages for the feedback network.
package onepole

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/internal/fastmath"
)

// Coefficient returns the pole radius exp(-2π·cutoffHz/sampleRate).
func Coefficient(sampleRate, cutoffHz float64) float64 {
	return fastmath.Exp(-2 * math.Pi * cutoffHz / sampleRate)
}

// Lowpass is y = x·(1-c) + y1·c with a fixed cutoff.
type Lowpass struct {
	coeff float64
	z     float64
}

// NewLowpass returns a lowpass with the given -3 dB corner.
func NewLowpass(sampleRate, cutoffHz float64) (*Lowpass, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("onepole: sample rate must be > 0: %f", sampleRate)
	}
	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 {
		return nil, fmt.Errorf("onepole: cutoff must be in (0, %f): %f", sampleRate/2, cutoffHz)
	}
	return &Lowpass{coeff: math.Exp(-2 * math.Pi * cutoffHz / sampleRate)}, nil
}

// Process filters one sample.
func (f *Lowpass) Process(x float64) float64 {
	f.z = core.FlushDenormals(x*(1-f.coeff) + f.z*f.coeff)
	return f.z
}

// Value returns the last output.
func (f *Lowpass) Value() float64 { return f.z }

// Set forces the filter state to v.
func (f *Lowpass) Set(v float64) { f.z = v }

// Reset clears state.
func (f *Lowpass) Reset() { f.z = 0 }

// LowpassQuad is a four-lane lowpass whose coefficient is supplied per
// sample.
type LowpassQuad struct {
	z core.Quad
}

// Process filters x with pole radius c, c in [0,1).
func (f *LowpassQuad) Process(x core.Quad, c float64) core.Quad {
	f.z = x.Scale(1 - c).Add(f.z.Scale(c)).FlushDenormals()
	return f.z
}

// Reset clears state.
func (f *LowpassQuad) Reset() { f.z = core.Quad{} }

// dcBlockHz sets the DC blocker pole at R = 1 - dcBlockHz/fs (about 35 Hz
// corner at 44.1 kHz).
const dcBlockHz = 220.5

// DCBlockQuad is a four-lane first-order difference highpass:
//
//	y = x - x1 + R·y1
type DCBlockQuad struct {
	coeff  float64
	x1, y1 core.Quad
}

// NewDCBlockQuad returns a DC blocker scaled for sampleRate.
func NewDCBlockQuad(sampleRate float64) (*DCBlockQuad, error) {
	if sampleRate <= dcBlockHz || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("onepole: sample rate must be > %v: %f", dcBlockHz, sampleRate)
	}
	return &DCBlockQuad{coeff: 1 - dcBlockHz/sampleRate}, nil
}

// Coefficient returns R.
func (f *DCBlockQuad) Coefficient() float64 { return f.coeff }

// Process filters one four-lane sample.
func (f *DCBlockQuad) Process(x core.Quad) core.Quad {
	y := x.Sub(f.x1).Add(f.y1.Scale(f.coeff)).FlushDenormals()
	f.x1 = x
	f.y1 = y
	return y
}

// Reset clears state.
func (f *DCBlockQuad) Reset() {
	f.x1 = core.Quad{}
	f.y1 = core.Quad{}
}
