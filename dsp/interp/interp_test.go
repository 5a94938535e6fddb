package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := Hermite4(tt, -1, 0, 1, 2)
		if math.Abs(got-tt) > 1e-12 {
			t.Fatalf("Hermite4(%v) = %v, want %v", tt, got, tt)
		}
	}
}

func TestLinear2Endpoints(t *testing.T) {
	if got := Linear2(0, 3, 5); got != 3 {
		t.Fatalf("Linear2(0) = %v, want 3", got)
	}
	if got := Linear2(1, 3, 5); got != 5 {
		t.Fatalf("Linear2(1) = %v, want 5", got)
	}
	if got := Linear2(0.5, 3, 5); got != 4 {
		t.Fatalf("Linear2(0.5) = %v, want 4", got)
	}
}

func TestModeTaps(t *testing.T) {
	if Linear.Taps() != 2 || Hermite.Taps() != 4 {
		t.Fatalf("unexpected taps: linear=%d hermite=%d", Linear.Taps(), Hermite.Taps())
	}
	if Mode(7).Valid() {
		t.Fatal("Mode(7) should be invalid")
	}
	if Hermite.String() != "hermite" {
		t.Fatalf("String() = %q", Hermite.String())
	}
}
