// Package smooth provides one-pole parameter smoothing for click-free
// automation.
package smooth

import (
	"fmt"
	"math"
)

// snapEpsilon is the distance at which the smoother lands on its target.
const snapEpsilon = 1e-9

// Smoother moves a value toward its target with a one-pole lag. The
// approach is monotonic and never overshoots.
type Smoother struct {
	sampleRate float64
	timeMs     float64
	coeff      float64
	value      float64
	target     float64
}

// New returns a smoother with time constant timeMs at sampleRate.
// A zero time constant makes every step jump straight to the target.
func New(sampleRate, timeMs float64) (*Smoother, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("smooth: sample rate must be > 0: %f", sampleRate)
	}
	if timeMs < 0 || math.IsNaN(timeMs) || math.IsInf(timeMs, 0) {
		return nil, fmt.Errorf("smooth: time must be >= 0: %f", timeMs)
	}

	s := &Smoother{sampleRate: sampleRate, timeMs: timeMs}
	if timeMs > 0 {
		s.coeff = math.Exp(-1 / (timeMs * 0.001 * sampleRate))
	}

	return s, nil
}

// Initialize snaps both value and target to v.
func (s *Smoother) Initialize(v float64) {
	s.value = v
	s.target = v
}

// SetTarget sets the value Next moves toward.
func (s *Smoother) SetTarget(t float64) {
	s.target = t
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if s.value == s.target {
		return s.value
	}

	s.value = s.target + (s.value-s.target)*s.coeff
	if math.Abs(s.value-s.target) < snapEpsilon {
		s.value = s.target
	}

	return s.value
}

// Value returns the current smoothed value.
func (s *Smoother) Value() float64 { return s.value }

// Target returns the current target.
func (s *Smoother) Target() float64 { return s.target }

// TimeMs returns the configured time constant.
func (s *Smoother) TimeMs() float64 { return s.timeMs }

// Settled reports whether the value has reached its target.
func (s *Smoother) Settled() bool { return s.value == s.target }

// Reset zeroes value and target.
func (s *Smoother) Reset() {
	s.value = 0
	s.target = 0
}
