package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-reverb/dsp/osc"
)

// Network topology.
var (
	lineFractions = core.Quad{0.34306569343065696, 0.48905109489051096, 0.7372262773722628, 1.0}
	diffuserMs    = core.Quad{5.75, 9.416666666666668, 13.083333333333332, 14.916666666666666}
	lfoOffsets    = core.Quad{0, 0.25, 0.5, 0.75}

	feedbackMatrix = core.Matrix4{
		{0.5, -0.5, -0.5, 0.5},
		{0.5, 0.5, -0.5, -0.5},
		{0.5, -0.5, 0.5, -0.5},
		{0.5, 0.5, 0.5, 0.5},
	}
)

const (
	diffuserMaxMs = 15

	// Absorption lowpass corner sweeps 20 kHz down to 50 Hz.
	absorbMaxHz = 20000.0
	absorbMinHz = 50.0

	// Output gain compensation.
	levelWindowMs = 21
	levelCeiling  = 0.5

	// Grain reads crossfade to static reads below this share of MaxDepth.
	grainFadeShare = 0.05
)

// TapsParams are the per-sample controls of the delay network.
type TapsParams struct {
	Size    float64 // ms of the longest line
	Speed   float64 // LFO rate, Hz
	Depth   float64 // modulation in ms; < 0 vibrato, > 0 grains
	Diffuse float64 // allpass gain
	Absorb  float64 // damping amount 0..1
	Decay   float64 // feedback gain
	Shimmer float64 // 0..1
}

// Taps is the four-line modulated feedback delay network with early
// reflections, shimmer injection and per-line allpass diffusion.
type Taps struct {
	sampleRate float64
	limits     core.Limits

	lines    [4]*delay.Line
	grains   [4]*delay.Grains
	diffuser [4]*delay.Allpass

	lfo     *osc.Phasor
	er      *earlyReflections
	shimmer *shimmer
	dc      *onepole.DCBlockQuad
	absorb  onepole.LowpassQuad
	sat     *saturation
	level   *movingAverage

	absorbIn    float64
	absorbCoeff float64
	absorbMax   float64
}

// NewTaps returns a network sized for the given limits. rnd drives grain
// start positions.
func NewTaps(sampleRate float64, l core.Limits, rnd delay.RandomSource) (*Taps, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb: sample rate must be > 0: %f", sampleRate)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}
	if rnd == nil {
		return nil, fmt.Errorf("reverb: taps need a random source")
	}

	t := &Taps{
		sampleRate: sampleRate,
		limits:     l,
		er:         newEarlyReflections(l),
		level:      newMovingAverage(sampleRate, levelWindowMs),
		absorbIn:   math.NaN(),
		absorbMax:  math.Exp(-2 * math.Pi * absorbMinHz / sampleRate),
	}

	var err error
	for i := range t.lines {
		frac := math.Max(lineFractions[i], t.er.maxFraction(i))
		if t.lines[i], err = delay.New(sampleRate, l.MaxSize*frac+l.MaxDepth); err != nil {
			return nil, err
		}
		if t.grains[i], err = delay.NewGrains(grainFadeShare*l.MaxDepth, rnd); err != nil {
			return nil, err
		}
		if t.diffuser[i], err = delay.NewAllpass(sampleRate, diffuserMaxMs); err != nil {
			return nil, err
		}
	}

	if t.lfo, err = osc.NewPhasor(sampleRate); err != nil {
		return nil, err
	}
	if t.shimmer, err = newShimmer(sampleRate); err != nil {
		return nil, err
	}
	if t.dc, err = onepole.NewDCBlockQuad(sampleRate); err != nil {
		return nil, err
	}
	if t.sat, err = newSaturation(sampleRate); err != nil {
		return nil, err
	}

	return t, nil
}

// absorbCoefficient maps absorb onto the lowpass pole, recomputing only
// when the input changes.
func (t *Taps) absorbCoefficient(absorb float64) float64 {
	if absorb == t.absorbIn {
		return t.absorbCoeff
	}
	hz := absorbMaxHz * math.Exp(absorb*math.Log(absorbMinHz/absorbMaxHz))
	t.absorbIn = absorb
	t.absorbCoeff = math.Min(onepole.Coefficient(t.sampleRate, hz), t.absorbMax)
	return t.absorbCoeff
}

// read pulls line i at its nominal length with the modulation mode
// selected by the sign of depth.
func (t *Taps) read(i int, size, phase, depth float64) float64 {
	ms := size * lineFractions[i]
	ph := core.Wrap(phase + lfoOffsets[i])

	switch {
	case depth < 0:
		return t.lines[i].ReadVibrato(ms, ph, depth)
	case depth > 0:
		return t.lines[i].ReadGrain(ms, ph, depth, t.grains[i])
	default:
		return t.lines[i].ReadStatic(ms)
	}
}

// Process runs one stereo sample through the network.
func (t *Taps) Process(inL, inR float64, p TapsParams) (float64, float64) {
	erL, erR := t.er.process(t.lines[0], t.lines[1], p.Size)

	phase := t.lfo.Process(p.Speed)

	var taps core.Quad
	for i := range taps {
		taps[i] = t.read(i, p.Size, phase, p.Depth)
	}

	outL := (taps[0] + taps[2]) * 0.5
	outR := (taps[1] + taps[3]) * 0.5

	gain := 1.0
	if avg := t.level.process(taps.MaxAbs()); avg > levelCeiling {
		gain = levelCeiling / avg
	}

	shL, shR := t.shimmer.process(inL, inR, outL, outR, p.Shimmer)

	x := feedbackMatrix.Apply(taps).Add(core.Quad{shL, shR, 0, 0})
	x = t.dc.Process(x)
	x = t.absorb.Process(x, t.absorbCoefficient(p.Absorb))
	x = t.sat.process(x)

	for i := range t.lines {
		y := t.diffuser[i].Process(x[i], diffuserMs[i], p.Diffuse)
		t.lines[i].Write(y * p.Decay)
	}

	return (outL + erL) * gain, (outR + erR) * gain
}

// Saturating reports whether the soft clipper is blended in.
func (t *Taps) Saturating() bool {
	return t.sat.active()
}

// Reset clears all network state.
func (t *Taps) Reset() {
	for i := range t.lines {
		t.lines[i].Reset()
		t.grains[i].Reset()
		t.diffuser[i].Reset()
	}
	t.lfo.Reset()
	t.shimmer.reset()
	t.dc.Reset()
	t.absorb.Reset()
	t.sat.reset()
	t.level.reset()
	t.absorbIn = math.NaN()
}
