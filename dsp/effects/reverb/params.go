package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/smooth"
)

// Speed bounds in Hz.
const (
	MinSpeed = 0.02
	MaxSpeed = 50.0
	MaxDecay = 1.2
)

// Params are the user-facing engine controls.
type Params struct {
	Reverse  float64 // 0 forward, 1 fully reversed, between blends
	Predelay float64 // ms
	Size     float64 // room size, ms of the longest line
	Speed    float64 // modulation rate, Hz
	Depth    float64 // -1..1: negative is vibrato, positive is granular
	Absorb   float64 // 0..1
	Decay    float64 // 0..1.2
	Tilt     float64 // -1 dark .. 1 bright
	Shimmer  float64 // 0..1
	Mix      float64 // 0 dry .. 1 wet
}

// DefaultParams returns the stock preset.
func DefaultParams() Params {
	return Params{
		Reverse:  0,
		Predelay: 7,
		Size:     40,
		Speed:    2,
		Depth:    -0.25,
		Absorb:   0.5,
		Decay:    0.9,
		Tilt:     0,
		Shimmer:  0,
		Mix:      0.5,
	}
}

// Clamp returns p with every field limited to its documented range.
func (p Params) Clamp(l core.Limits) Params {
	p.Reverse = core.Clamp(p.Reverse, 0, 1)
	p.Predelay = core.Clamp(p.Predelay, l.MinPredelay, l.MaxPredelay)
	p.Size = core.Clamp(p.Size, l.MinSize, l.MaxSize)
	p.Speed = core.Clamp(p.Speed, MinSpeed, MaxSpeed)
	p.Depth = core.Clamp(p.Depth, -1, 1)
	p.Absorb = core.Clamp(p.Absorb, 0, 1)
	p.Decay = core.Clamp(p.Decay, 0, MaxDecay)
	p.Tilt = core.Clamp(p.Tilt, -1, 1)
	p.Shimmer = core.Clamp(p.Shimmer, 0, 1)
	p.Mix = core.Clamp(p.Mix, 0, 1)
	return p
}

// Validate reports the first field outside its documented range.
func (p Params) Validate(l core.Limits) error {
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"reverse", p.Reverse, 0, 1},
		{"predelay", p.Predelay, l.MinPredelay, l.MaxPredelay},
		{"size", p.Size, l.MinSize, l.MaxSize},
		{"speed", p.Speed, MinSpeed, MaxSpeed},
		{"depth", p.Depth, -1, 1},
		{"absorb", p.Absorb, 0, 1},
		{"decay", p.Decay, 0, MaxDecay},
		{"tilt", p.Tilt, -1, 1},
		{"shimmer", p.Shimmer, 0, 1},
		{"mix", p.Mix, 0, 1},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v < c.min || c.v > c.max {
			return fmt.Errorf("reverb: %s must be in [%g, %g]: %f", c.name, c.min, c.max, c.v)
		}
	}
	return nil
}

// Smoothing times in ms.
const (
	reverseSmoothMs  = 12
	predelaySmoothMs = 7
	sizeSmoothMs     = 2
	depthSmoothMs    = 12
	absorbSmoothMs   = 12
	decaySmoothMs    = 12
	tiltSmoothMs     = 12
	shimmerSmoothMs  = 12
	mixSmoothMs      = 12
)

// Absorb above this fraction starts damping; below it only diffusion
// grows.
const absorbKnee = 0.3

// frame is one sample's worth of smoothed, derived controls.
type frame struct {
	reverse  float64
	predelay float64
	size     float64
	speed    float64
	depth    float64 // ms, signed
	absorb   float64 // re-ranged 0..1
	diffuse  float64 // allpass gain
	decay    float64
	tilt     float64 // pot position 0..1
	shimmer  float64
	mix      float64
}

// smoothers holds one Smoother per continuously automated control.
// Speed only moves an LFO rate and is used as is.
type smoothers struct {
	limits core.Limits

	reverse, predelay, size, depth, absorb, decay, tilt, shimmer, mix *smooth.Smoother

	speed float64
}

func newSmoothers(sampleRate float64, l core.Limits) (*smoothers, error) {
	s := &smoothers{limits: l}
	specs := []struct {
		dst **smooth.Smoother
		ms  float64
	}{
		{&s.reverse, reverseSmoothMs},
		{&s.predelay, predelaySmoothMs},
		{&s.size, sizeSmoothMs},
		{&s.depth, depthSmoothMs},
		{&s.absorb, absorbSmoothMs},
		{&s.decay, decaySmoothMs},
		{&s.tilt, tiltSmoothMs},
		{&s.shimmer, shimmerSmoothMs},
		{&s.mix, mixSmoothMs},
	}
	for _, spec := range specs {
		sm, err := smooth.New(sampleRate, spec.ms)
		if err != nil {
			return nil, err
		}
		*spec.dst = sm
	}
	return s, nil
}

// warp maps user controls onto the values the smoothers track.
func (s *smoothers) warp(p Params) Params {
	p = p.Clamp(s.limits)
	p.Depth = p.Depth * math.Abs(p.Depth) * s.limits.MaxDepth
	p.Tilt = p.Tilt*math.Abs(p.Tilt)*0.5 + 0.5
	return p
}

func (s *smoothers) initialize(p Params) {
	p = s.warp(p)
	s.speed = p.Speed
	s.reverse.Initialize(p.Reverse)
	s.predelay.Initialize(p.Predelay)
	s.size.Initialize(p.Size)
	s.depth.Initialize(p.Depth)
	s.absorb.Initialize(p.Absorb)
	s.decay.Initialize(p.Decay)
	s.tilt.Initialize(p.Tilt)
	s.shimmer.Initialize(p.Shimmer)
	s.mix.Initialize(p.Mix)
}

func (s *smoothers) setTargets(p Params) {
	p = s.warp(p)
	s.speed = p.Speed
	s.reverse.SetTarget(p.Reverse)
	s.predelay.SetTarget(p.Predelay)
	s.size.SetTarget(p.Size)
	s.depth.SetTarget(p.Depth)
	s.absorb.SetTarget(p.Absorb)
	s.decay.SetTarget(p.Decay)
	s.tilt.SetTarget(p.Tilt)
	s.shimmer.SetTarget(p.Shimmer)
	s.mix.SetTarget(p.Mix)
}

func (s *smoothers) next() frame {
	absorb := s.absorb.Next()

	return frame{
		reverse:  s.reverse.Next(),
		predelay: s.predelay.Next(),
		size:     s.size.Next(),
		speed:    s.speed,
		depth:    s.depth.Next(),
		absorb:   math.Max(absorb-absorbKnee, 0) / (1 - absorbKnee),
		diffuse:  math.Min(absorb*3, 1) * 0.8,
		decay:    s.decay.Next(),
		tilt:     s.tilt.Next(),
		shimmer:  s.shimmer.Next(),
		mix:      s.mix.Next(),
	}
}
