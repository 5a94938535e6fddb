// Package biquad runs second-order IIR sections in Direct Form II
// Transposed.
//
// A [Stereo] pair filters two channels that share one set of
// [Coefficients], which is how the tilt equalizer runs. Per-sample
// processing is plain Go; [Stereo.ProcessBlock] dispatches to a kernel
// chosen once from the detected CPU features.
//
// Coefficient design lives with the callers (see dsp/filter/tilt).
package biquad
