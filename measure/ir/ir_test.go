package ir

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// exponentialDecay returns h(t) = exp(-ln(1000)·t/rt60), which falls by
// 60 dB after rt60 seconds.
func exponentialDecay(sampleRate, rt60, seconds float64) []float64 {
	h := make([]float64, int(sampleRate*seconds))
	k := 6.9078 / rt60
	for i := range h {
		h[i] = math.Exp(-k * float64(i) / sampleRate)
	}
	return h
}

// twoTaps returns impulses at 0 and delayMs with the given second level.
func twoTaps(sampleRate, delayMs, amp float64, length int) []float64 {
	h := make([]float64, length)
	h[0] = 1
	if n := int(delayMs * 0.001 * sampleRate); n < length {
		h[n] = amp
	}
	return h
}

func mustAnalyzer(t *testing.T, sampleRate float64, opts ...Option) *Analyzer {
	t.Helper()
	a, err := New(sampleRate, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewValidation(t *testing.T) {
	for _, fs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := New(fs); err != ErrInvalidSampleRate {
			t.Fatalf("New(%v) = %v, want ErrInvalidSampleRate", fs, err)
		}
	}
	if _, err := New(48000, WithNoiseFloor(3)); err == nil {
		t.Fatal("expected noise floor error")
	}
	if got := mustAnalyzer(t, 44100).SampleRate(); got != 44100 {
		t.Fatalf("SampleRate = %v", got)
	}
}

func TestAnalyzeExponentialDecay(t *testing.T) {
	const fs = 48000
	tests := []struct {
		name    string
		rt60    float64
		seconds float64
	}{
		{"short", 0.3, 1.5},
		{"medium", 1.0, 3.0},
		{"long", 2.5, 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := mustAnalyzer(t, fs).Analyze(exponentialDecay(fs, tt.rt60, tt.seconds))
			if err != nil {
				t.Fatal(err)
			}

			tol := 0.05 * tt.rt60
			for name, got := range map[string]float64{"RT60": m.RT60, "T20": m.T20, "T30": m.T30} {
				if math.Abs(got-tt.rt60) > tol {
					t.Errorf("%s = %.4f, want %.4f", name, got, tt.rt60)
				}
			}
			if math.Abs(m.EDT-tt.rt60) > 2*tol {
				t.Errorf("EDT = %.4f, want %.4f", m.EDT, tt.rt60)
			}
			if m.PeakIndex != 0 {
				t.Errorf("PeakIndex = %d, want 0", m.PeakIndex)
			}
			if m.CenterTime <= 0 || m.CenterTime > tt.rt60 {
				t.Errorf("CenterTime = %.4f out of range", m.CenterTime)
			}
			if m.D80 < m.D50 {
				t.Errorf("D80 %.3f < D50 %.3f", m.D80, m.D50)
			}
		})
	}
}

func TestSchroederShape(t *testing.T) {
	a := mustAnalyzer(t, 48000)
	curve, err := a.Schroeder(exponentialDecay(48000, 1, 3))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(curve[0]) > 1e-9 {
		t.Fatalf("curve[0] = %v dB, want 0", curve[0])
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1]+1e-9 {
			t.Fatalf("curve rises at %d: %v > %v", i, curve[i], curve[i-1])
		}
	}

	if _, err := a.Schroeder(nil); err != ErrEmptyIR {
		t.Fatalf("Schroeder(nil) = %v, want ErrEmptyIR", err)
	}
}

func TestRT60NoDecay(t *testing.T) {
	a := mustAnalyzer(t, 48000)
	for _, h := range [][]float64{{1}, {1, 0.5}} {
		if _, err := a.RT60(h); err != ErrNoDecay {
			t.Fatalf("RT60(%v) = %v, want ErrNoDecay", h, err)
		}
	}
	if _, err := a.RT60(nil); err != ErrEmptyIR {
		t.Fatalf("RT60(nil) = %v, want ErrEmptyIR", err)
	}
}

func TestEnergyRatios(t *testing.T) {
	const fs = 48000
	a := mustAnalyzer(t, fs)

	// equal taps either side of both boundaries
	h := twoTaps(fs, 100, 1, fs/5)
	if math.Abs(a.definition(h, 50)-0.5) > 1e-12 || math.Abs(a.definition(h, 80)-0.5) > 1e-12 {
		t.Fatalf("definition = %v / %v, want 0.5", a.definition(h, 50), a.definition(h, 80))
	}
	if c := a.clarity(h, 80); math.Abs(c) > 1e-9 {
		t.Fatalf("C80 = %v, want 0", c)
	}
	if ct := a.centerTime(h); math.Abs(ct-0.05) > 1e-9 {
		t.Fatalf("center time = %v, want 0.05", ct)
	}

	// weak late tap: 20 dB clarity
	h = twoTaps(fs, 100, 0.1, fs/5)
	if c := a.clarity(h, 80); math.Abs(c-20) > 1e-9 {
		t.Fatalf("C80 = %v, want 20", c)
	}

	// all early
	h = twoTaps(fs, 5, 0.5, fs/100)
	if d := a.definition(h, 50); d != 1 {
		t.Fatalf("D50 = %v, want 1", d)
	}
}

func TestClarityDefinitionRelationship(t *testing.T) {
	m, err := mustAnalyzer(t, 48000).Analyze(exponentialDecay(48000, 1, 3))
	if err != nil {
		t.Fatal(err)
	}

	want := 10 * math.Log10(m.D80/(1-m.D80))
	if math.Abs(m.C80-want) > 1e-9 {
		t.Fatalf("C80 = %v, want %v from D80 = %v", m.C80, want, m.D80)
	}
}

func TestOnset(t *testing.T) {
	a := mustAnalyzer(t, 48000)

	h := make([]float64, 10000)
	for i := 0; i < 5000; i++ {
		h[i] = 0.001 * float64(i%2*2-1)
	}
	h[5000] = 1

	idx, err := a.Onset(h, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 5000 {
		t.Fatalf("Onset = %d, want 5000", idx)
	}
	if _, err := a.Onset(nil, 0.1); err != ErrEmptyIR {
		t.Fatalf("Onset(nil) = %v, want ErrEmptyIR", err)
	}
}

func TestNoiseFloorTruncation(t *testing.T) {
	const fs = 48000
	h := exponentialDecay(fs, 0.5, 2)
	// a constant floor at -80 dB flattens the late Schroeder curve
	for i := range h {
		h[i] += 1e-4
	}

	plain, err := mustAnalyzer(t, fs).Analyze(h)
	if err != nil {
		t.Fatal(err)
	}
	cut, err := mustAnalyzer(t, fs, WithNoiseFloor(-70)).Analyze(h)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(cut.RT60-0.5) > math.Abs(plain.RT60-0.5) {
		t.Fatalf("truncation made RT60 worse: %v vs %v", cut.RT60, plain.RT60)
	}
}

func TestAnalyzeStereo(t *testing.T) {
	const fs = 48000
	a := mustAnalyzer(t, fs)
	h := exponentialDecay(fs, 0.5, 1.5)

	m, err := a.AnalyzeStereo(h, h)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Correlation-1) > 1e-9 || m.Left != m.Right {
		t.Fatalf("identical channels: %+v", m)
	}

	neg := make([]float64, len(h))
	for i, v := range h {
		neg[i] = -v
	}
	m, err = a.AnalyzeStereo(h, neg)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Correlation+1) > 1e-9 {
		t.Fatalf("inverted correlation = %v, want -1", m.Correlation)
	}

	if _, err := a.AnalyzeStereo(h, h[:10]); err == nil {
		t.Fatal("expected length error")
	}
}

func TestReverbTailHasFiniteRT60(t *testing.T) {
	const fs = 48000
	r, err := reverb.New(fs)
	if err != nil {
		t.Fatal(err)
	}

	p := reverb.DefaultParams()
	p.Mix = 1
	r.InitializeParams(p)

	left := make([]float64, 4*fs)
	right := make([]float64, 4*fs)
	left[0], right[0] = 1, 1
	if err := r.ProcessBlock(left, right, p); err != nil {
		t.Fatal(err)
	}

	m, err := mustAnalyzer(t, fs).AnalyzeStereo(left, right)
	if err != nil {
		t.Fatal(err)
	}
	for _, ch := range []Metrics{m.Left, m.Right} {
		if !(ch.RT60 > 0.3 && ch.RT60 < 6) {
			t.Fatalf("RT60 = %v s, want a finite room-sized decay", ch.RT60)
		}
	}
	if m.Correlation >= 0.99 {
		t.Fatalf("tail channels are not decorrelated: %v", m.Correlation)
	}
}
