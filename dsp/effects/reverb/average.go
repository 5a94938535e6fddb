package reverb

import "math"

// movingAverage is a boxcar mean over a fixed window. The running sum is
// rebuilt from the buffer every time the cursor wraps so rounding error
// cannot accumulate.
type movingAverage struct {
	buf []float64
	pos int
	sum float64
}

func newMovingAverage(sampleRate, windowMs float64) *movingAverage {
	n := int(math.Max(1, math.Round(windowMs*0.001*sampleRate)))
	return &movingAverage{buf: make([]float64, n)}
}

func (m *movingAverage) process(x float64) float64 {
	m.sum += x - m.buf[m.pos]
	m.buf[m.pos] = x
	m.pos++

	if m.pos == len(m.buf) {
		m.pos = 0
		m.sum = 0
		for _, v := range m.buf {
			m.sum += v
		}
	}

	return m.sum / float64(len(m.buf))
}

func (m *movingAverage) reset() {
	for i := range m.buf {
		m.buf[i] = 0
	}
	m.pos = 0
	m.sum = 0
}
