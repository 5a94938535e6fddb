// Package window generates the window shapes used for grain envelopes,
// tail fades and spectral analysis of impulse responses.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
	TypeTukey
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeBlackman:
		return "blackman"
	case TypeTukey:
		return "tukey"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

func defaultConfig() config {
	return config{alpha: 0.5}
}

// WithAlpha sets the taper fraction of a Tukey window, in [0,1].
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 && v <= 1 {
			c.alpha = v
		}
	}
}

// WithPeriodic selects the periodic form (length n, period n) instead of
// the symmetric form (period n-1).
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	for i := range out {
		out[i] = eval(t, float64(i)/den, cfg)
	}

	return out
}

// eval returns the window value at normalized position x in [0,1].
func eval(t Type, x float64, cfg config) float64 {
	switch t {
	case TypeHann:
		s := math.Sin(math.Pi * x)
		return s * s
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	case TypeTukey:
		a := cfg.alpha
		if a <= 0 {
			return 1
		}
		edge := a / 2
		switch {
		case x < edge:
			return 0.5 * (1 - math.Cos(math.Pi*x/edge))
		case x > 1-edge:
			return 0.5 * (1 - math.Cos(math.Pi*(1-x)/edge))
		default:
			return 1
		}
	default:
		return 1
	}
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// FadeOut applies the falling half of a Hann window to the last n samples
// of buf.
func FadeOut(buf []float64, n int) {
	if n <= 0 || len(buf) == 0 {
		return
	}
	if n > len(buf) {
		n = len(buf)
	}

	ramp := Generate(TypeHann, 2*n)[n:]
	vecmath.MulBlockInPlace(buf[len(buf)-n:], ramp)
}

// CoherentGain returns the mean coefficient value.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, fmt.Errorf("window: coefficients must not be empty")
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs)), nil
}
