package core

import "testing"

func TestQuadOps(t *testing.T) {
	a := Quad{1, -2, 3, -4}
	b := Splat(2)

	if got := a.Add(b); got != (Quad{3, 0, 5, -2}) {
		t.Fatalf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Quad{-1, -4, 1, -6}) {
		t.Fatalf("Sub = %v", got)
	}
	if got := a.Mul(b); got != (Quad{2, -4, 6, -8}) {
		t.Fatalf("Mul = %v", got)
	}
	if got := a.Scale(0.5); got != (Quad{0.5, -1, 1.5, -2}) {
		t.Fatalf("Scale = %v", got)
	}
	if got := a.Sum(); got != -2 {
		t.Fatalf("Sum = %v, want -2", got)
	}
	if got := a.MaxAbs(); got != 4 {
		t.Fatalf("MaxAbs = %v, want 4", got)
	}
	if got := (Quad{1e-40, 1, -1e-40, 0}).FlushDenormals(); got != (Quad{0, 1, 0, 0}) {
		t.Fatalf("FlushDenormals = %v", got)
	}
}

func TestMatrix4Apply(t *testing.T) {
	id := Matrix4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	q := Quad{1, 2, 3, 4}
	if got := id.Apply(q); got != q {
		t.Fatalf("identity Apply = %v, want %v", got, q)
	}
}

func TestLimitsValidate(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Fatalf("default limits: %v", err)
	}

	bad := DefaultLimits()
	bad.MaxSize = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for max size below min size")
	}

	bad = DefaultLimits()
	bad.MaxDepth = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero max depth")
	}
}
