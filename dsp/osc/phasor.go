// Package osc provides the free-running ramp oscillator that drives every
// modulation source in the reverb.
package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Phasor is a 0..1 ramp that wraps. A negative frequency runs it backwards.
type Phasor struct {
	sampleRate float64
	phase      float64
	start      float64
}

// Option configures a Phasor.
type Option func(*Phasor) error

// WithPhase sets the starting phase in cycles.
func WithPhase(p float64) Option {
	return func(ph *Phasor) error {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("osc: phase must be finite: %f", p)
		}
		ph.start = core.Wrap(p)
		return nil
	}
}

// NewPhasor returns a phasor running at sampleRate.
func NewPhasor(sampleRate float64, opts ...Option) (*Phasor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("osc: sample rate must be > 0: %f", sampleRate)
	}

	p := &Phasor{sampleRate: sampleRate}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.phase = p.start

	return p, nil
}

// Process advances by freqHz/sampleRate and returns the wrapped phase.
func (p *Phasor) Process(freqHz float64) float64 {
	p.phase += freqHz / p.sampleRate
	if p.phase >= 1 || p.phase < 0 {
		p.phase = core.Wrap(p.phase)
	}
	return p.phase
}

// Phase returns the current phase without advancing.
func (p *Phasor) Phase() float64 {
	return p.phase
}

// SetPhase jumps to phase (wrapped into [0,1)).
func (p *Phasor) SetPhase(phase float64) {
	p.phase = core.Wrap(phase)
}

// Reset returns to the starting phase.
func (p *Phasor) Reset() {
	p.phase = p.start
}
