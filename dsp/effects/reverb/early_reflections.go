package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
)

// Tap positions as fractions of size. Left reads line 0, right reads
// line 1.
var (
	erTapsL = [6]float64{0, 0.188, 0.278, 0.38, 0.482, 0.584}
	erTapsR = [6]float64{0.018, 0.086, 0.29, 0.392, 0.494, 0.597}
)

// Early reflection level at the smallest and largest room.
const (
	erGainSmall = 0.707946 // -3 dB
	erGainLarge = 0.089125 // -21 dB
)

// earlyReflections reads a fixed multitap pattern off the first two
// network lines; tap i is i dB quieter than the first.
type earlyReflections struct {
	atten   [6]float64
	minSize float64
	maxSize float64
}

func newEarlyReflections(l core.Limits) *earlyReflections {
	er := &earlyReflections{minSize: l.MinSize, maxSize: l.MaxSize}
	for i := range er.atten {
		er.atten[i] = core.DBToLinear(-float64(i))
	}
	return er
}

// maxFraction is the furthest tap, as a fraction of size, on line idx.
func (er *earlyReflections) maxFraction(idx int) float64 {
	switch idx {
	case 0:
		return erTapsL[len(erTapsL)-1]
	case 1:
		return erTapsR[len(erTapsR)-1]
	default:
		return 0
	}
}

// gain shrinks the reflections as the room grows.
func (er *earlyReflections) gain(size float64) float64 {
	return (size-er.minSize)*((erGainLarge-erGainSmall)/er.maxSize) + erGainSmall
}

func (er *earlyReflections) process(lineL, lineR *delay.Line, size float64) (float64, float64) {
	var l, r float64
	for i := range er.atten {
		l += lineL.Read(size*erTapsL[i]) * er.atten[i]
		r += lineR.Read(size*erTapsR[i]) * er.atten[i]
	}

	g := er.gain(size)
	return l * g, r * g
}
