package delay

import "fmt"

// Allpass is a Schroeder allpass diffuser over a Line:
//
//	v = x + g*z(t)
//	y = z(t) - g*v
type Allpass struct {
	line *Line
}

// NewAllpass returns a diffuser able to delay up to maxDelayMs.
func NewAllpass(sampleRate, maxDelayMs float64) (*Allpass, error) {
	line, err := New(sampleRate, maxDelayMs)
	if err != nil {
		return nil, fmt.Errorf("delay: allpass: %w", err)
	}
	return &Allpass{line: line}, nil
}

// Process filters one sample with delay timeMs and coefficient gain.
func (a *Allpass) Process(x, timeMs, gain float64) float64 {
	r := a.line.Read(timeMs)
	v := x + r*gain
	a.line.Write(v)
	return r - v*gain
}

// Reset clears the internal line.
func (a *Allpass) Reset() {
	a.line.Reset()
}
