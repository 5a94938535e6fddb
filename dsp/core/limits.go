package core

import "fmt"

// Limits are the fixed parameter bounds a reverb engine is built around.
// They size every delay buffer, so they are set once at construction.
type Limits struct {
	MinSize     float64 // room size lower bound (size units, ms of the longest line)
	MaxSize     float64
	MinPredelay float64 // ms
	MaxPredelay float64 // ms
	MaxDepth    float64 // maximum modulation excursion in ms
}

// DefaultLimits returns the stock engine bounds.
func DefaultLimits() Limits {
	return Limits{
		MinSize:     1,
		MaxSize:     500,
		MinPredelay: 7,
		MaxPredelay: 500,
		MaxDepth:    4,
	}
}

// Validate reports whether the limits describe a usable engine.
func (l Limits) Validate() error {
	if l.MinSize <= 0 || l.MaxSize < l.MinSize {
		return fmt.Errorf("core: invalid size limits [%f, %f]", l.MinSize, l.MaxSize)
	}
	if l.MinPredelay <= 0 || l.MaxPredelay < l.MinPredelay {
		return fmt.Errorf("core: invalid predelay limits [%f, %f]", l.MinPredelay, l.MaxPredelay)
	}
	if l.MaxDepth <= 0 {
		return fmt.Errorf("core: max depth must be > 0: %f", l.MaxDepth)
	}

	return nil
}
