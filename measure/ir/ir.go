package ir

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by the analyzer.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// floorDB is where the Schroeder curve bottoms out for all-zero tails.
const floorDB = -200

// Metrics holds single-channel decay results. Times are in seconds.
type Metrics struct {
	RT60       float64
	EDT        float64
	T20        float64
	T30        float64
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // 0..1
	D80        float64 // 0..1
	CenterTime float64
	PeakIndex  int
}

// StereoMetrics holds per-channel metrics plus the inter-channel
// correlation of the tail in [-1, 1].
type StereoMetrics struct {
	Left        Metrics
	Right       Metrics
	Correlation float64
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithNoiseFloor truncates the response where its envelope first drops
// below db relative to the peak, before integrating. Recorded responses
// need this; rendered ones usually do not.
func WithNoiseFloor(db float64) Option {
	return func(a *Analyzer) error {
		if db >= 0 || math.IsNaN(db) {
			return fmt.Errorf("ir: noise floor must be < 0 dB: %f", db)
		}
		a.noiseFloor = math.Pow(10, db/20)
		return nil
	}
}

// Analyzer computes decay metrics at a fixed sample rate.
type Analyzer struct {
	sampleRate float64
	noiseFloor float64 // linear, 0 disables truncation
}

// New returns an analyzer for responses sampled at sampleRate.
func New(sampleRate float64, opts ...Option) (*Analyzer, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}

	a := &Analyzer{sampleRate: sampleRate}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// SampleRate returns the configured rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Analyze computes all metrics for one channel.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	peak := peakIndex(ir)
	h := a.truncate(ir[peak:])
	curve := schroeder(h)

	m := Metrics{
		PeakIndex:  peak,
		CenterTime: a.centerTime(h),
		D50:        a.definition(h, 50),
		D80:        a.definition(h, 80),
		C50:        a.clarity(h, 50),
		C80:        a.clarity(h, 80),
		EDT:        a.decayTime(curve, 0, -10),
		T20:        a.decayTime(curve, -5, -25),
		T30:        a.decayTime(curve, -5, -35),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// AnalyzeStereo analyzes both channels of a stereo response.
func (a *Analyzer) AnalyzeStereo(left, right []float64) (StereoMetrics, error) {
	if len(left) != len(right) {
		return StereoMetrics{}, fmt.Errorf("ir: channel lengths differ: %d vs %d", len(left), len(right))
	}

	l, err := a.Analyze(left)
	if err != nil {
		return StereoMetrics{}, err
	}
	r, err := a.Analyze(right)
	if err != nil {
		return StereoMetrics{}, err
	}

	return StereoMetrics{Left: l, Right: r, Correlation: correlation(left, right)}, nil
}

// Schroeder returns the backward-integrated energy decay of ir in dB,
// normalized to 0 dB at the first sample.
func (a *Analyzer) Schroeder(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return schroeder(ir), nil
}

// RT60 returns the T30 reverberation time, or T20 when the response does
// not decay by 35 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	curve := schroeder(a.truncate(ir))
	if rt := a.decayTime(curve, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := a.decayTime(curve, -5, -25); rt > 0 {
		return rt, nil
	}

	return 0, ErrNoDecay
}

// Onset returns the first index whose magnitude reaches ratio times the
// peak, e.g. 0.1 for -20 dB.
func (a *Analyzer) Onset(ir []float64, ratio float64) (int, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	threshold := math.Abs(ir[peakIndex(ir)]) * ratio
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i, nil
		}
	}

	return 0, nil
}

func (a *Analyzer) truncate(h []float64) []float64 {
	if a.noiseFloor == 0 || len(h) == 0 {
		return h
	}

	threshold := math.Abs(h[0]) * a.noiseFloor
	last := len(h)
	for i := len(h) - 1; i >= 0; i-- {
		if math.Abs(h[i]) >= threshold {
			last = i + 1
			break
		}
	}

	return h[:last]
}

func schroeder(h []float64) []float64 {
	out := make([]float64, len(h))

	var acc float64
	for i := len(h) - 1; i >= 0; i-- {
		acc += h[i] * h[i]
		out[i] = acc
	}

	total := out[0]
	if total <= 0 {
		return out
	}

	for i, e := range out {
		if e <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = 10 * math.Log10(e/total)
	}

	return out
}

// decayTime fits the curve between startDB and endDB and extrapolates the
// slope to -60 dB. It returns 0 when the range is not reached.
func (a *Analyzer) decayTime(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end-start < 1 {
		return 0
	}

	ys := curve[start : end+1]
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i) / a.sampleRate
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if !(slope < 0) {
		return 0
	}

	return -60 / slope
}

func (a *Analyzer) boundary(timeMs float64) int {
	return int(math.Round(timeMs * 0.001 * a.sampleRate))
}

// energySplit returns the energy before and from sample n onward.
func energySplit(h []float64, n int) (early, late float64) {
	for i, v := range h {
		if i < n {
			early += v * v
		} else {
			late += v * v
		}
	}
	return early, late
}

func (a *Analyzer) definition(h []float64, timeMs float64) float64 {
	n := a.boundary(timeMs)
	if n <= 0 {
		return 0
	}
	if n >= len(h) {
		return 1
	}

	early, late := energySplit(h, n)
	if early+late <= 0 {
		return 0
	}

	return early / (early + late)
}

func (a *Analyzer) clarity(h []float64, timeMs float64) float64 {
	n := a.boundary(timeMs)
	if n <= 0 {
		return math.Inf(-1)
	}
	if n >= len(h) {
		return math.Inf(1)
	}

	early, late := energySplit(h, n)
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(early/late)
}

func (a *Analyzer) centerTime(h []float64) float64 {
	var num, den float64
	for i, v := range h {
		e := v * v
		num += float64(i) / a.sampleRate * e
		den += e
	}
	if den <= 0 {
		return 0
	}

	return num / den
}

func peakIndex(h []float64) int {
	idx, peak := 0, 0.0
	for i, v := range h {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}
	return idx
}

// correlation is the Pearson correlation of the two channels, 0 when
// either is constant.
func correlation(l, r []float64) float64 {
	c := stat.Correlation(l, r, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}
