package onepole

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func TestNewLowpassValidation(t *testing.T) {
	if _, err := NewLowpass(0, 10); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewLowpass(48000, 30000); err == nil {
		t.Fatal("expected error for cutoff above Nyquist")
	}
}

func TestLowpassStepSettlesToInput(t *testing.T) {
	f, err := NewLowpass(48000, 3)
	if err != nil {
		t.Fatal(err)
	}
	prev := 0.0
	for i := 0; i < 48000; i++ {
		y := f.Process(1)
		if y < prev || y > 1 {
			t.Fatalf("step %d: %v not monotonic toward 1", i, y)
		}
		prev = y
	}
	if prev < 0.99 {
		t.Fatalf("after 1 s at 3 Hz: %v, want > 0.99", prev)
	}
}

func TestLowpassQuadUnityDCGain(t *testing.T) {
	var f LowpassQuad
	c := Coefficient(44100, 50)
	var y core.Quad
	for i := 0; i < 44100; i++ {
		y = f.Process(core.Quad{1, -1, 0.5, 0}, c)
	}
	want := core.Quad{1, -1, 0.5, 0}
	for i := range y {
		if math.Abs(y[i]-want[i]) > 1e-6 {
			t.Fatalf("lane %d = %v, want %v", i, y[i], want[i])
		}
	}
}

func TestLowpassQuadZeroCoefficientPasses(t *testing.T) {
	var f LowpassQuad
	in := core.Quad{0.1, 0.2, 0.3, 0.4}
	if got := f.Process(in, 0); got != in {
		t.Fatalf("c=0: %v, want %v", got, in)
	}
}

func TestDCBlockRemovesOffset(t *testing.T) {
	f, err := NewDCBlockQuad(44100)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(f.Coefficient()-0.995) > 1e-12 {
		t.Fatalf("coefficient %v, want 0.995", f.Coefficient())
	}

	var y core.Quad
	for i := 0; i < 44100; i++ {
		y = f.Process(core.Splat(0.5))
	}
	if y.MaxAbs() > 1e-6 {
		t.Fatalf("residual DC %v", y)
	}
}

func TestDCBlockValidation(t *testing.T) {
	if _, err := NewDCBlockQuad(100); err == nil {
		t.Fatal("expected error for sample rate below the blocker corner")
	}
}

func TestDenormalFlush(t *testing.T) {
	var f LowpassQuad
	f.Process(core.Splat(1e-20), 0.5)
	var y core.Quad
	for i := 0; i < 200; i++ {
		y = f.Process(core.Quad{}, 0.5)
	}
	if y != (core.Quad{}) {
		t.Fatalf("state not flushed: %v", y)
	}
}
