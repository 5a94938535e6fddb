package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/interp"
)

// Line is a circular delay line addressed in milliseconds.
type Line struct {
	buffer       []float64
	writePos     int
	sampleRate   float64
	samplesPerMs float64
	mode         interp.Mode
	maxDelay     float64 // samples
}

// Option configures a Line.
type Option func(*config) error

type config struct {
	mode interp.Mode
}

// WithMode selects the fractional read kernel. The default is linear.
func WithMode(m interp.Mode) Option {
	return func(c *config) error {
		if !m.Valid() {
			return fmt.Errorf("delay: invalid interpolation mode: %v", m)
		}
		c.mode = m
		return nil
	}
}

// New returns a delay line able to hold maxDelayMs at sampleRate.
func New(sampleRate, maxDelayMs float64, opts ...Option) (*Line, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay: sample rate must be > 0: %f", sampleRate)
	}
	if maxDelayMs <= 0 || math.IsNaN(maxDelayMs) || math.IsInf(maxDelayMs, 0) {
		return nil, fmt.Errorf("delay: max delay must be > 0: %f", maxDelayMs)
	}

	cfg := config{mode: interp.Linear}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	// one extra cell per interpolation tap past the longest distance
	size := int(math.Ceil(maxDelayMs*sampleRate/1000)) + cfg.mode.Taps() + 1

	return &Line{
		buffer:       make([]float64, size),
		sampleRate:   sampleRate,
		samplesPerMs: sampleRate / 1000,
		mode:         cfg.mode,
		maxDelay:     float64(size - cfg.mode.Taps() + 1),
	}, nil
}

// Len returns the internal buffer size in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// SampleRate returns the rate the line was sized for.
func (d *Line) SampleRate() float64 {
	return d.sampleRate
}

// MaxDelayMs returns the longest distance a read can reach.
func (d *Line) MaxDelayMs() float64 {
	return d.maxDelay / d.samplesPerMs
}

// Write stores one sample and advances the cursor.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample ms milliseconds behind the write cursor.
func (d *Line) Read(ms float64) float64 {
	return d.ReadSamples(ms * d.samplesPerMs)
}

// ReadStatic is Read under the name the modulated readers pair with.
func (d *Line) ReadStatic(ms float64) float64 {
	return d.ReadSamples(ms * d.samplesPerMs)
}

// ReadVibrato reads at ms offset by a sinusoid of amplitude |depthMs| at
// the given LFO phase (cycles).
func (d *Line) ReadVibrato(ms, phase, depthMs float64) float64 {
	return d.Read(ms + math.Sin(2*math.Pi*phase)*math.Abs(depthMs))
}

// ReadGrain reads through the two-voice grain reader g.
func (d *Line) ReadGrain(ms, phase, depthMs float64, g *Grains) float64 {
	return g.Read(d, ms, phase, depthMs)
}

// ReadSamples returns the sample delay samples behind the write cursor.
// A delay of 1 is the most recent write. Distances are clamped into the
// buffer; NaN reads the minimum distance.
func (d *Line) ReadSamples(delay float64) float64 {
	if !(delay >= 1) {
		delay = 1
	} else if delay > d.maxDelay {
		delay = d.maxDelay
	}

	p := int(delay)
	t := delay - float64(p)

	if d.mode == interp.Hermite {
		xm1 := d.tap(max(p-1, 1))
		return interp.Hermite4(t, xm1, d.tap(p), d.tap(p+1), d.tap(p+2))
	}

	return interp.Linear2(t, d.tap(p), d.tap(p+1))
}

// tap returns the sample i writes ago, 1 <= i <= len.
func (d *Line) tap(i int) float64 {
	idx := d.writePos - i
	if idx < 0 {
		idx += len(d.buffer)
	}
	return d.buffer[idx]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
