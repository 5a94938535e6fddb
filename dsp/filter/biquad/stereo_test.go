package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func lowpassish() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestProcessSampleDFIIT(t *testing.T) {
	// Hand-traced DF-II-T for x = [1, 0, 0, 0]:
	//
	// n=0: y=0.25, d0=0.55, d1=0.24
	// n=1: y=0.55, d0=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.048, d1=-0.014
	// n=3: y=0.048
	s := NewStereo(lowpassish())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		l, r := s.ProcessSample(x, -x)
		if !almostEqual(l, w, eps) || !almostEqual(r, -w, eps) {
			t.Fatalf("sample %d: got (%v, %v), want ±%v", i, l, r, w)
		}
	}
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s := NewStereo(lowpassish())
	s.ProcessSample(1, 1)
	s.SetCoefficients(Coefficients{B0: 1})

	// identity numerator, no feedback: the stored d0 from the old
	// coefficients still reaches the output
	if l, _ := s.ProcessSample(0, 0); !almostEqual(l, 0.55, eps) {
		t.Fatalf("state lost on retune: %v", l)
	}
}

func TestFlushDenormals(t *testing.T) {
	s := NewStereo(Coefficients{B0: 1})
	s.state = [4]float64{1e-310, 0.5, -1e-310, 0.25}
	s.FlushDenormals()
	if s.state != [4]float64{0, 0.5, 0, 0.25} {
		t.Fatalf("FlushDenormals: %v", s.state)
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	c := lowpassish()
	blk := NewStereo(c)
	ref := NewStereo(c)

	// several blocks in a row so state carries across calls
	for _, n := range []int{0, 1, 2, 7, 64} {
		left := make([]float64, n)
		right := make([]float64, n)
		for i := range left {
			left[i] = math.Sin(0.1 * float64(i))
			right[i] = math.Cos(0.37 * float64(i))
		}
		wantL := make([]float64, n)
		wantR := make([]float64, n)
		for i := range left {
			wantL[i], wantR[i] = ref.ProcessSample(left[i], right[i])
		}

		if err := blk.ProcessBlock(left, right); err != nil {
			t.Fatal(err)
		}
		for i := range left {
			if !almostEqual(left[i], wantL[i], eps) || !almostEqual(right[i], wantR[i], eps) {
				t.Fatalf("n=%d sample %d: got (%v,%v) want (%v,%v)", n, i, left[i], right[i], wantL[i], wantR[i])
			}
		}
	}
}

func TestChannelsIndependent(t *testing.T) {
	s := NewStereo(lowpassish())
	l, r := s.ProcessSample(1, 0)
	if l != 0.25 || r != 0 {
		t.Fatalf("first frame (%v,%v)", l, r)
	}
	l, r = s.ProcessSample(0, 0)
	if !almostEqual(l, 0.55, eps) || r != 0 {
		t.Fatalf("second frame (%v,%v)", l, r)
	}
}

func TestProcessBlockLengthMismatch(t *testing.T) {
	s := NewStereo(lowpassish())
	if err := s.ProcessBlock(make([]float64, 3), make([]float64, 2)); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestResetClearsState(t *testing.T) {
	s := NewStereo(lowpassish())
	s.ProcessSample(1, 1)
	s.Reset()
	if l, r := s.ProcessSample(0, 0); l != 0 || r != 0 {
		t.Fatalf("output after Reset: (%v, %v)", l, r)
	}
}

func TestMagnitudeSquaredMatchesTransferFunction(t *testing.T) {
	c := lowpassish()
	const fs = 48000
	for _, f := range []float64{0, 100, 1000, 12000, 23999} {
		z1 := cmplx.Exp(complex(0, -2*math.Pi*f/fs))
		h := (complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z1*z1) /
			(1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z1*z1)
		want := real(h)*real(h) + imag(h)*imag(h)
		if got := c.MagnitudeSquared(f, fs); !almostEqual(got, want, 1e-9) {
			t.Fatalf("%v Hz: |H|^2 = %v, want %v", f, got, want)
		}
	}
	// numerator sums to 1, denominator to 0.84
	if db, want := c.MagnitudeDB(0, fs), 20*math.Log10(1/0.84); !almostEqual(db, want, 1e-9) {
		t.Fatalf("DC gain = %v dB, want %v", db, want)
	}
}
