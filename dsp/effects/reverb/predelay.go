package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
)

// predelay holds the stereo input line shared by the forward and reverse
// readers. It spans twice the longest predelay because the reverse voices
// scan out to 2·time.
type predelay struct {
	line    *delay.StereoLine
	reverse *reverser
}

func newPredelay(sampleRate float64, l core.Limits) (*predelay, error) {
	line, err := delay.NewStereo(sampleRate, 2*l.MaxPredelay)
	if err != nil {
		return nil, err
	}
	rev, err := newReverser(sampleRate, l.MinPredelay)
	if err != nil {
		return nil, err
	}
	return &predelay{line: line, reverse: rev}, nil
}

// process returns the delayed input at timeMs, blended toward the reverse
// reader by amount, then stores (inL, inR).
func (p *predelay) process(inL, inR, timeMs, amount float64) (float64, float64) {
	var outL, outR float64

	switch {
	case amount <= 0:
		outL, outR = p.line.Read(timeMs)
	case amount >= 1:
		outL, outR = p.reverse.read(p.line, timeMs)
	default:
		fl, fr := p.line.Read(timeMs)
		rl, rr := p.reverse.read(p.line, timeMs)
		outL = core.Lerp(fl, rl, amount)
		outR = core.Lerp(fr, rr, amount)
	}

	if amount > 0 {
		p.reverse.advance(timeMs)
	}

	p.line.Write(inL, inR)

	return outL, outR
}

func (p *predelay) reset() {
	p.line.Reset()
	p.reverse.reset()
}
