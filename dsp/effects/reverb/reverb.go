package reverb

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/filter/tilt"
	"github.com/cwbudde/algo-reverb/dsp/mix"
)

// ErrBlockLength is returned by ProcessBlock for mismatched channels.
var ErrBlockLength = errors.New("reverb: left and right blocks differ in length")

const defaultSeed = 1

// Option configures a Reverb.
type Option func(*config) error

type config struct {
	limits core.Limits
	rnd    delay.RandomSource
	seed   int64
}

// WithLimits overrides the parameter bounds the engine is sized for.
func WithLimits(l core.Limits) Option {
	return func(c *config) error {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("reverb: %w", err)
		}
		c.limits = l
		return nil
	}
}

// WithSeed seeds the grain random source.
func WithSeed(seed int64) Option {
	return func(c *config) error {
		c.seed = seed
		return nil
	}
}

// WithRandomSource replaces the seeded source entirely.
func WithRandomSource(rnd delay.RandomSource) Option {
	return func(c *config) error {
		if rnd == nil {
			return fmt.Errorf("reverb: random source must not be nil")
		}
		c.rnd = rnd
		return nil
	}
}

// Reverb is the complete stereo engine: predelay and reverse, the delay
// network, tilt EQ and constant-power dry/wet mix.
type Reverb struct {
	sampleRate float64
	limits     core.Limits

	params   *smoothers
	predelay *predelay
	taps     *Taps
	tilt     *tilt.Filter

	// block scratch: dry input and per-sample mix
	dryL, dryR, mixes []float64

	initialized bool
}

// New returns an engine for sampleRate with default parameters loaded.
func New(sampleRate float64, opts ...Option) (*Reverb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb: sample rate must be > 0: %f", sampleRate)
	}

	cfg := config{limits: core.DefaultLimits(), seed: defaultSeed}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rnd == nil {
		cfg.rnd = rand.New(rand.NewSource(cfg.seed))
	}

	params, err := newSmoothers(sampleRate, cfg.limits)
	if err != nil {
		return nil, err
	}
	pd, err := newPredelay(sampleRate, cfg.limits)
	if err != nil {
		return nil, err
	}
	taps, err := NewTaps(sampleRate, cfg.limits, cfg.rnd)
	if err != nil {
		return nil, err
	}
	tf, err := tilt.New(sampleRate)
	if err != nil {
		return nil, err
	}

	r := &Reverb{
		sampleRate: sampleRate,
		limits:     cfg.limits,
		params:     params,
		predelay:   pd,
		taps:       taps,
		tilt:       tf,
	}
	r.params.initialize(DefaultParams())

	return r, nil
}

// SampleRate returns the rate the engine was built for.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// Limits returns the bounds the engine was sized for.
func (r *Reverb) Limits() core.Limits { return r.limits }

// InitializeParams jumps every control to p without smoothing.
func (r *Reverb) InitializeParams(p Params) {
	r.params.initialize(p)
	r.initialized = true
}

// SetParams sets new smoothing targets. The first call on a fresh or reset
// engine snaps instead.
func (r *Reverb) SetParams(p Params) {
	if !r.initialized {
		r.InitializeParams(p)
		return
	}
	r.params.setTargets(p)
}

// Tick processes one stereo sample with the current targets.
func (r *Reverb) Tick(inL, inR float64) (float64, float64) {
	f := r.params.next()
	wl, wr := r.wet(inL, inR, f)
	wl, wr = r.tilt.Process(wl, wr, f.tilt)

	return mix.Process(inL, inR, wl, wr, f.mix)
}

// wet runs one frame through predelay and the delay network.
func (r *Reverb) wet(inL, inR float64, f frame) (float64, float64) {
	pl, pr := r.predelay.process(inL, inR, f.predelay, f.reverse)

	return r.taps.Process(pl, pr, TapsParams{
		Size:    f.size,
		Speed:   f.speed,
		Depth:   f.depth,
		Diffuse: f.diffuse,
		Absorb:  f.absorb,
		Decay:   f.decay,
		Shimmer: f.shimmer,
	})
}

// Process sets p as the target and processes one sample.
func (r *Reverb) Process(inL, inR float64, p Params) (float64, float64) {
	r.SetParams(p)
	return r.Tick(inL, inR)
}

// ProcessBlock processes left and right in place with p as the target.
// Scratch space is kept between calls, so only a block longer than any
// before it allocates.
func (r *Reverb) ProcessBlock(left, right []float64, p Params) error {
	if len(left) != len(right) {
		return ErrBlockLength
	}

	r.SetParams(p)
	if !r.params.tilt.Settled() {
		for i := range left {
			left[i], right[i] = r.Tick(left[i], right[i])
		}
		return nil
	}

	// Tilt holds still for the whole block: filter the wet block in one
	// pass, then mix against the saved dry input.
	n := len(left)
	r.dryL, r.dryR, r.mixes = grow(r.dryL, n), grow(r.dryR, n), grow(r.mixes, n)
	copy(r.dryL, left)
	copy(r.dryR, right)

	pos := r.params.tilt.Value()
	for i := range left {
		f := r.params.next()
		left[i], right[i] = r.wet(left[i], right[i], f)
		r.mixes[i] = f.mix
	}
	if err := r.tilt.ProcessBlock(left, right, pos); err != nil {
		return err
	}
	for i := range left {
		left[i], right[i] = mix.Process(r.dryL[i], r.dryR[i], left[i], right[i], r.mixes[i])
	}

	return nil
}

// ToneDB returns the gain in dB the tilt EQ currently applies at hz.
func (r *Reverb) ToneDB(hz float64) float64 {
	c := r.tilt.Coefficients(r.params.tilt.Value())
	return c.MagnitudeDB(hz, r.sampleRate)
}

func grow(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Saturating reports whether the network's soft clipper is engaged.
func (r *Reverb) Saturating() bool {
	return r.taps.Saturating()
}

// Reset clears all audio state and reloads the default parameters.
func (r *Reverb) Reset() {
	r.predelay.reset()
	r.taps.Reset()
	r.tilt.Reset()
	r.params.initialize(DefaultParams())
	r.initialized = false
}
