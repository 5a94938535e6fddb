package window

import (
	"fmt"
	"math"
)

// Table is a periodic window sampled once and read by phase in [0,1).
// Reads are linearly interpolated, so two tables read half a cycle apart
// keep the overlap-add property of the underlying shape.
type Table struct {
	coeffs []float64
	size   float64
}

// NewTable samples t at n points over one period.
func NewTable(t Type, n int, opts ...Option) (*Table, error) {
	if n < 2 {
		return nil, fmt.Errorf("window: table size must be >= 2: %d", n)
	}

	coeffs := Generate(t, n, append(opts, WithPeriodic())...)
	// guard point so At never needs to wrap the upper neighbour
	coeffs = append(coeffs, coeffs[0])

	return &Table{coeffs: coeffs, size: float64(n)}, nil
}

// At returns the window value at phase. Phase is folded into [0,1).
func (t *Table) At(phase float64) float64 {
	phase -= math.Floor(phase)
	pos := phase * t.size
	i := int(pos)
	if i >= len(t.coeffs)-1 {
		i = len(t.coeffs) - 2
	}
	frac := pos - float64(i)
	return t.coeffs[i] + frac*(t.coeffs[i+1]-t.coeffs[i])
}

// Len returns the number of samples per period.
func (t *Table) Len() int {
	return len(t.coeffs) - 1
}
