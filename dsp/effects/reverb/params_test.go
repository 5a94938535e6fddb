package reverb

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func TestDefaultParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(core.DefaultLimits()); err != nil {
		t.Fatalf("default params rejected: %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	l := core.DefaultLimits()
	tests := []struct {
		name string
		mod  func(*Params)
	}{
		{"reverse", func(p *Params) { p.Reverse = 1.5 }},
		{"predelay", func(p *Params) { p.Predelay = 1 }},
		{"size", func(p *Params) { p.Size = 1000 }},
		{"speed", func(p *Params) { p.Speed = 0 }},
		{"depth", func(p *Params) { p.Depth = -2 }},
		{"absorb", func(p *Params) { p.Absorb = math.NaN() }},
		{"decay", func(p *Params) { p.Decay = 1.3 }},
		{"tilt", func(p *Params) { p.Tilt = 2 }},
		{"shimmer", func(p *Params) { p.Shimmer = -0.1 }},
		{"mix", func(p *Params) { p.Mix = 1.01 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mod(&p)
			if err := p.Validate(l); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestClampBringsParamsInRange(t *testing.T) {
	l := core.DefaultLimits()
	p := Params{
		Reverse:  -1,
		Predelay: 0,
		Size:     10000,
		Speed:    100,
		Depth:    5,
		Absorb:   -3,
		Decay:    9,
		Tilt:     -9,
		Shimmer:  4,
		Mix:      -1,
	}.Clamp(l)

	if err := p.Validate(l); err != nil {
		t.Fatalf("clamped params rejected: %v", err)
	}
	if p.Predelay != l.MinPredelay || p.Size != l.MaxSize || p.Decay != MaxDecay {
		t.Fatalf("unexpected clamp result: %+v", p)
	}
}

func TestWarpedDepthAndTilt(t *testing.T) {
	l := core.DefaultLimits()
	s, err := newSmoothers(48000, l)
	if err != nil {
		t.Fatal(err)
	}

	p := DefaultParams()
	p.Depth = -0.5
	p.Tilt = 1
	s.initialize(p)
	f := s.next()

	if want := -0.25 * l.MaxDepth; math.Abs(f.depth-want) > 1e-12 {
		t.Fatalf("depth = %v, want %v", f.depth, want)
	}
	if f.tilt != 1 {
		t.Fatalf("tilt = %v, want 1", f.tilt)
	}

	p.Tilt = 0
	s.initialize(p)
	if f := s.next(); f.tilt != 0.5 {
		t.Fatalf("flat tilt = %v, want 0.5", f.tilt)
	}
}

func TestDerivedAbsorbAndDiffuse(t *testing.T) {
	s, err := newSmoothers(48000, core.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		absorb, wantAbsorb, wantDiffuse float64
	}{
		{0, 0, 0},
		{0.1, 0, 0.24},
		{0.3, 0, 0.72},
		{0.65, 0.5, 0.8},
		{1, 1, 0.8},
	}
	for _, tt := range tests {
		p := DefaultParams()
		p.Absorb = tt.absorb
		s.initialize(p)
		f := s.next()
		if math.Abs(f.absorb-tt.wantAbsorb) > 1e-12 || math.Abs(f.diffuse-tt.wantDiffuse) > 1e-12 {
			t.Fatalf("absorb %v: got (%v, %v), want (%v, %v)",
				tt.absorb, f.absorb, f.diffuse, tt.wantAbsorb, tt.wantDiffuse)
		}
	}
}

func TestSmoothedTargetsApproachMonotonically(t *testing.T) {
	s, err := newSmoothers(48000, core.DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}

	p := DefaultParams()
	s.initialize(p)
	p.Mix = 1
	s.setTargets(p)

	prev := 0.5
	for i := 0; i < 48000; i++ {
		m := s.next().mix
		if m < prev || m > 1 {
			t.Fatalf("sample %d: mix %v after %v", i, m, prev)
		}
		prev = m
	}
	if prev != 1 {
		t.Fatalf("mix did not settle: %v", prev)
	}
}
