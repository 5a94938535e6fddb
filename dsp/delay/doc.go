// Package delay provides the circular sample buffers the reverb is built
// from: a millisecond-addressed [Line] with explicit static, vibrato and
// grain read variants, a [StereoLine] pair, the two-voice [Grains] reader
// and a Schroeder [Allpass] diffuser.
//
// All buffers are sized once at construction. Reads are addressed as a
// distance behind the write cursor and are clamped into the buffer, so a
// read never observes the cell the next Write will overwrite.
package delay
