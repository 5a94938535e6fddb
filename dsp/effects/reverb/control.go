package reverb

import "sync/atomic"

// Control hands parameters from one writer goroutine to the audio
// goroutine without locking.
type Control struct {
	p atomic.Pointer[Params]
}

// NewControl returns a Control holding p.
func NewControl(p Params) *Control {
	c := &Control{}
	c.Store(p)
	return c
}

// Store publishes p.
func (c *Control) Store(p Params) {
	c.p.Store(&p)
}

// Load returns the most recently stored parameters, or DefaultParams if
// nothing was stored yet.
func (c *Control) Load() Params {
	if p := c.p.Load(); p != nil {
		return *p
	}
	return DefaultParams()
}

// Renderer drives a Reverb with parameters read from a Control once per
// block.
type Renderer struct {
	rev  *Reverb
	ctrl *Control
}

// NewRenderer pairs rev with ctrl and snaps rev to the current params.
func NewRenderer(rev *Reverb, ctrl *Control) *Renderer {
	rev.InitializeParams(ctrl.Load())
	return &Renderer{rev: rev, ctrl: ctrl}
}

// Render processes left and right in place.
func (r *Renderer) Render(left, right []float64) error {
	return r.rev.ProcessBlock(left, right, r.ctrl.Load())
}

// Control returns the parameter handoff.
func (r *Renderer) Control() *Control { return r.ctrl }

// Reverb returns the driven engine.
func (r *Renderer) Reverb() *Reverb { return r.rev }
