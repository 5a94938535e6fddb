package delay

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/window"
)

// RandomSource yields uniform values in [0,1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// grainWindow is shared by every reader; it is read-only after init.
var grainWindow = mustTable(window.NewTable(window.TypeHann, 2048))

func mustTable(t *window.Table, err error) *window.Table {
	if err != nil {
		panic(err)
	}
	return t
}

// Grains reads a Line through two overlapping windowed voices half a cycle
// apart. Each voice draws a new start offset in [0, depth) when its phase
// wraps, so the jump in read position always lands under a closed window.
type Grains struct {
	start     [2]float64
	prevPhase [2]float64
	fadeBelow float64
	rnd       RandomSource
}

// NewGrains returns a reader that crossfades toward a plain static read
// for depths below fadeBelowMs.
func NewGrains(fadeBelowMs float64, rnd RandomSource) (*Grains, error) {
	if rnd == nil {
		return nil, fmt.Errorf("delay: grains need a random source")
	}
	if fadeBelowMs < 0 {
		return nil, fmt.Errorf("delay: grain fade threshold must be >= 0: %f", fadeBelowMs)
	}
	return &Grains{fadeBelow: fadeBelowMs, rnd: rnd}, nil
}

// Read returns the grain-summed value around ms for LFO phase in cycles.
func (g *Grains) Read(line *Line, ms, phase, depthMs float64) float64 {
	out := 0.0
	for v := range g.start {
		p := core.Wrap(phase + 0.5*float64(v))
		if p-g.prevPhase[v] < 0 {
			g.start[v] = g.rnd.Float64() * depthMs
		}
		g.prevPhase[v] = p

		out += line.Read(ms+g.start[v]) * grainWindow.At(p)
	}

	if depthMs < g.fadeBelow {
		return core.Lerp(line.Read(ms), out, depthMs/g.fadeBelow)
	}

	return out
}

// Start returns the current start offset of voice v in ms.
func (g *Grains) Start(v int) float64 {
	return g.start[v]
}

// Reset clears voice state. The random source is left as is.
func (g *Grains) Reset() {
	g.start = [2]float64{}
	g.prevPhase = [2]float64{}
}
