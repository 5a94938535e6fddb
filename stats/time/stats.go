// Package time provides time-domain level statistics for rendered audio.
package time

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Peak          float64 // max |x|
	PeakPos       int
	CrestFactor   float64 // peak / RMS, 0 for silence
	Energy        float64 // sum of squares
	ZeroCrossings int
	Variance      float64 // population variance
	Skewness      float64
	Kurtosis      float64 // excess
}

// RMSdB returns the RMS level in dBFS.
func (s Stats) RMSdB() float64 { return ampToDB(s.RMS) }

// PeakdB returns the peak level in dBFS.
func (s Stats) PeakdB() float64 { return ampToDB(s.Peak) }

// CrestFactordB returns the crest factor in dB, 0 for silence.
func (s Stats) CrestFactordB() float64 {
	if s.CrestFactor == 0 {
		return 0
	}
	return ampToDB(s.CrestFactor)
}

func ampToDB(v float64) float64 {
	a := math.Abs(v)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// Calculate computes all statistics for signal.
func Calculate(signal []float64) Stats {
	var m Meter
	m.Update(signal)

	s := m.Result()
	if len(signal) < 2 {
		return s
	}

	s.DC, s.Variance = stat.PopMeanVariance(signal, nil)
	if s.Variance > 0 {
		s.Skewness = stat.Skew(signal, nil)
		s.Kurtosis = stat.ExKurtosis(signal, nil)
	}

	return s
}

// RMS returns the root mean square of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sum float64
	for _, x := range signal {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(signal)))
}

// Peak returns max |x|.
func Peak(signal []float64) float64 {
	var p float64
	for _, x := range signal {
		if a := math.Abs(x); a > p {
			p = a
		}
	}
	return p
}

// ZeroCrossings counts sign changes between consecutive samples. Zeros do
// not count as a crossing.
func ZeroCrossings(signal []float64) int {
	n := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			n++
		}
	}
	return n
}

// Meter accumulates level statistics block by block. Moments are left
// zero; use Calculate when the whole signal is at hand.
type Meter struct {
	n             int
	sum           float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	last          float64
}

// Update adds a block.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		if m.n > 0 && m.last*x < 0 {
			m.zeroCrossings++
		}
		if a := math.Abs(x); a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}
		m.sum += x
		m.sumSq += x * x
		m.last = x
		m.n++
	}
}

// Result returns the statistics so far.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return Stats{}
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	s := Stats{
		Length:        m.n,
		DC:            m.sum / nf,
		RMS:           rms,
		Peak:          m.peak,
		PeakPos:       m.peakPos,
		Energy:        m.sumSq,
		ZeroCrossings: m.zeroCrossings,
	}
	if rms > 0 {
		s.CrestFactor = m.peak / rms
	}

	return s
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}
