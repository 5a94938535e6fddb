// Package response computes the magnitude response of an impulse response
// with a single zero-padded FFT.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/window"
)

// ErrEmpty is returned for an empty impulse response.
var ErrEmpty = errors.New("response: impulse response is empty")

// magnitudeFloorDB is reported for bins with zero magnitude.
const magnitudeFloorDB = -300

// Option configures Measure.
type Option func(*config) error

type config struct {
	fftSize   int
	window    window.Type
	windowed  bool
	fadeShare float64
}

// WithFFTSize fixes the transform length. It must be a power of two; the
// response is truncated to fit.
func WithFFTSize(n int) Option {
	return func(c *config) error {
		if n < 2 || n&(n-1) != 0 {
			return fmt.Errorf("response: fft size must be a power of two >= 2: %d", n)
		}
		c.fftSize = n
		return nil
	}
}

// WithWindow applies a full analysis window instead of the default tail
// fade.
func WithWindow(t window.Type) Option {
	return func(c *config) error {
		c.window = t
		c.windowed = true
		return nil
	}
}

// WithFade sets the share of the response, counted from its end, that is
// faded out before the transform. Zero disables the fade.
func WithFade(share float64) Option {
	return func(c *config) error {
		if share < 0 || share > 1 || math.IsNaN(share) {
			return fmt.Errorf("response: fade share must be in [0, 1]: %f", share)
		}
		c.fadeShare = share
		return nil
	}
}

// Spectrum is a one-sided magnitude response.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64 // linear, bins 0..FFTSize/2
}

// Measure transforms ir and returns its magnitude response.
func Measure(ir []float64, sampleRate float64, opts ...Option) (*Spectrum, error) {
	if len(ir) == 0 {
		return nil, ErrEmpty
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("response: sample rate must be > 0: %f", sampleRate)
	}

	cfg := config{fadeShare: 0.1}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.fftSize == 0 {
		cfg.fftSize = nextPowerOf2(len(ir))
	}

	frame := make([]float64, cfg.fftSize)
	copy(frame, ir)
	used := frame[:min(len(ir), cfg.fftSize)]
	if cfg.windowed {
		window.Apply(cfg.window, used)
	} else {
		window.FadeOut(used, int(cfg.fadeShare*float64(len(used))))
	}

	plan, err := algofft.NewPlan64(cfg.fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	src := make([]complex128, cfg.fftSize)
	for i, v := range frame {
		src[i] = complex(v, 0)
	}
	dst := make([]complex128, cfg.fftSize)
	if err := plan.Forward(dst, src); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := cfg.fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range re {
		re[i] = real(dst[i])
		im[i] = imag(dst[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return &Spectrum{SampleRate: sampleRate, FFTSize: cfg.fftSize, Magnitude: mag}, nil
}

// BinHz returns the center frequency of bin k.
func (s *Spectrum) BinHz(k int) float64 {
	return float64(k) * s.SampleRate / float64(s.FFTSize)
}

// At returns the magnitude at hz in dB, linearly interpolated between
// bins. Frequencies outside [0, Nyquist] are clamped.
func (s *Spectrum) At(hz float64) float64 {
	pos := core.Clamp(hz*float64(s.FFTSize)/s.SampleRate, 0, float64(len(s.Magnitude)-1))
	k := int(pos)
	if k >= len(s.Magnitude)-1 {
		return toDB(s.Magnitude[len(s.Magnitude)-1])
	}
	return toDB(core.Lerp(s.Magnitude[k], s.Magnitude[k+1], pos-float64(k)))
}

// Band is the mean energy between two frequencies, in dB.
type Band struct {
	CenterHz float64
	LowHz    float64
	HighHz   float64
	Level    float64
}

// OctaveBands averages energy in octave bands centered on 31.25 Hz·2^n up
// to Nyquist.
func (s *Spectrum) OctaveBands() []Band {
	var bands []Band
	nyquist := s.SampleRate / 2
	for fc := 31.25; fc*math.Sqrt2 <= nyquist; fc *= 2 {
		lo, hi := fc/math.Sqrt2, fc*math.Sqrt2
		bands = append(bands, Band{CenterHz: fc, LowHz: lo, HighHz: hi, Level: s.bandLevel(lo, hi)})
	}
	return bands
}

func (s *Spectrum) bandLevel(lo, hi float64) float64 {
	var sum float64
	n := 0
	for k, m := range s.Magnitude {
		if f := s.BinHz(k); f >= lo && f < hi {
			sum += m * m
			n++
		}
	}
	if n == 0 {
		return s.At(math.Sqrt(lo * hi))
	}
	return toDB(math.Sqrt(sum / float64(n)))
}

func toDB(m float64) float64 {
	if m <= 0 {
		return magnitudeFloorDB
	}
	return core.LinearToDB(m)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}
