// Package reverb implements a stereo algorithmic reverb built around a
// four-line modulated feedback delay network.
//
// Signal flow per sample:
//
//	input ─┬─ pre-delay / reverse ── network ── tilt EQ ──┐
//	       └──────────────────────────────────────────────┴─ mix ── output
//
// The network reads its four lines (static, vibrato or granular,
// depending on the sign of depth), derives the stereo output and early
// reflections, mixes the lines through an orthogonal matrix and writes
// them back through DC blocking, absorption, saturation, allpass
// diffusion and decay. A shimmer stage feeds an octave-up copy of the
// output back into the first two lines.
//
// [Reverb] owns every stage plus the parameter smoothers. It is not safe
// for concurrent use; hand parameters in from another goroutine through
// a [Control].
package reverb
