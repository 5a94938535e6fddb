// Package interp provides the fractional-read kernels used by the delay lines.
//
//   - [Linear2]:  2-point linear interpolation, the engine default
//   - [Hermite4]: 4-point cubic Hermite, for smoother modulated reads
//
// [Mode] selects between them when a delay line is built.
package interp
