// Package fastmath provides the approximations the reverb's per-sample
// paths use.
//
// Exp and Sqrt default to the standard library. Building with the
// fastmath tag switches them to algo-approx, trading a small amount of
// accuracy for speed. Atan and SoftClip are always the rational
// approximation: they shape the feedback saturation and must stay bounded
// and monotonic regardless of build tags.
package fastmath
