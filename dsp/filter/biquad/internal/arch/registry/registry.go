// Package registry holds the biquad block kernels registered by the arch
// backends and selects one from CPU features.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ProcessStereoFn filters left and right in place. state holds
// [left d0, left d1, right d0, right d1] and is updated.
type ProcessStereoFn func(c Coefficients, state *[4]float64, left, right []float64)

// OpEntry is one registered kernel implementation.
type OpEntry struct {
	Name          string
	SIMDLevel     cpu.SIMDLevel
	Priority      int
	ProcessStereo ProcessStereoFn
}

// OpRegistry stores available implementations.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default kernel registry.
var Global = &OpRegistry{}

// Register adds an implementation entry.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority implementation supported by features.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sorted {
		// highest priority first
		for i := 1; i < len(r.entries); i++ {
			key := r.entries[i]
			j := i - 1
			for j >= 0 && r.entries[j].Priority < key.Priority {
				r.entries[j+1] = r.entries[j]
				j--
			}
			r.entries[j+1] = key
		}
		r.sorted = true
	}

	for i := range r.entries {
		if supports(features, r.entries[i].SIMDLevel) {
			return &r.entries[i]
		}
	}

	return nil
}

func supports(f cpu.Features, level cpu.SIMDLevel) bool {
	switch level {
	case cpu.SIMDNone:
		return true
	case cpu.SIMDSSE2:
		return !f.ForceGeneric && f.HasSSE2
	case cpu.SIMDAVX2:
		return !f.ForceGeneric && f.HasAVX2
	default:
		return false
	}
}

// Len returns the number of registered entries.
func (r *OpRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
