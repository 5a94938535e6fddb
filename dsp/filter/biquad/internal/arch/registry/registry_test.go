package registry_test

import (
	"testing"

	_ "github.com/cwbudde/algo-reverb/dsp/filter/biquad/internal/arch/generic"
	"github.com/cwbudde/algo-reverb/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// tagKernel writes tag into every left sample so tests can tell which
// entry Lookup handed out.
func tagKernel(tag float64) registry.ProcessStereoFn {
	return func(_ registry.Coefficients, _ *[4]float64, left, _ []float64) {
		for i := range left {
			left[i] = tag
		}
	}
}

func run(t *testing.T, e *registry.OpEntry) float64 {
	t.Helper()
	if e == nil || e.ProcessStereo == nil {
		t.Fatalf("no stereo kernel: %#v", e)
	}
	var state [4]float64
	left, right := []float64{0}, []float64{0}
	e.ProcessStereo(registry.Coefficients{}, &state, left, right)
	return left[0]
}

func TestLookupByFeatures(t *testing.T) {
	reg := &registry.OpRegistry{}
	reg.Register(registry.OpEntry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20, ProcessStereo: tagKernel(2)})
	reg.Register(registry.OpEntry{Name: "generic", SIMDLevel: cpu.SIMDNone, ProcessStereo: tagKernel(0)})
	reg.Register(registry.OpEntry{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10, ProcessStereo: tagKernel(1)})

	cases := []struct {
		name string
		f    cpu.Features
		want float64
	}{
		{"avx2", cpu.Features{HasSSE2: true, HasAVX2: true}, 2},
		{"sse2", cpu.Features{HasSSE2: true}, 1},
		{"none", cpu.Features{}, 0},
		{"forced", cpu.Features{HasSSE2: true, HasAVX2: true, ForceGeneric: true}, 0},
	}
	for _, tc := range cases {
		if got := run(t, reg.Lookup(tc.f)); got != tc.want {
			t.Fatalf("%s: kernel %v, want %v", tc.name, got, tc.want)
		}
	}
	if reg.Len() != 3 {
		t.Fatalf("Len = %d, want 3", reg.Len())
	}
}

func TestLookupEmpty(t *testing.T) {
	reg := &registry.OpRegistry{}
	if e := reg.Lookup(cpu.Features{}); e != nil {
		t.Fatalf("expected nil from empty registry, got %#v", e)
	}
}

func TestGlobalGenericFilters(t *testing.T) {
	e := registry.Global.Lookup(cpu.Features{ForceGeneric: true})
	if e == nil || e.Name != "generic" {
		t.Fatalf("generic fallback missing: %#v", e)
	}

	// one-sample delay: y[n] = x[n-1], carried in d0 across blocks
	c := registry.Coefficients{B1: 1}
	var state [4]float64
	left, right := []float64{1, 2}, []float64{-1, -2}
	e.ProcessStereo(c, &state, left, right)
	if left[0] != 0 || left[1] != 1 || right[1] != -1 {
		t.Fatalf("first block: %v %v", left, right)
	}

	left, right = []float64{0}, []float64{0}
	e.ProcessStereo(c, &state, left, right)
	if left[0] != 2 || right[0] != -2 {
		t.Fatalf("state not carried: %v %v", left, right)
	}
}
