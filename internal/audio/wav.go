// Package audio moves stereo float64 audio in and out of the reverb: WAV
// files, interleaved float32 streams and live playback.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

// ErrInvalidWAV is returned for input that is not a PCM WAV file.
var ErrInvalidWAV = errors.New("audio: not a valid WAV file")

// Clip is a stereo signal in [-1, 1] at a fixed rate. Mono sources are
// duplicated to both channels.
type Clip struct {
	SampleRate int
	BitDepth   int
	Left       []float64
	Right      []float64
}

// NewClip returns a silent clip of frames frames.
func NewClip(sampleRate, bitDepth, frames int) *Clip {
	return &Clip{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}
}

// Frames returns the clip length.
func (c *Clip) Frames() int { return len(c.Left) }

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return float64(len(c.Left)) / float64(c.SampleRate)
}

// Extend appends frames of silence.
func (c *Clip) Extend(frames int) {
	c.Left = append(c.Left, make([]float64, frames)...)
	c.Right = append(c.Right, make([]float64, frames)...)
}

// Peak returns the largest magnitude of either channel.
func (c *Clip) Peak() float64 {
	p := 0.0
	for i := range c.Left {
		p = math.Max(p, math.Max(math.Abs(c.Left[i]), math.Abs(c.Right[i])))
	}
	return p
}

// Normalize scales the clip so its peak sits at peakDB dBFS and returns
// the applied gain. Silent clips are left alone.
func (c *Clip) Normalize(peakDB float64) float64 {
	p := c.Peak()
	if p == 0 {
		return 1
	}
	g := math.Pow(10, peakDB/20) / p
	f64.Scale(c.Left, c.Left, g)
	f64.Scale(c.Right, c.Right, g)
	return g
}

// Decode reads a PCM WAV stream.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: decode: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("audio: %w: %d channels", ErrInvalidWAV, channels)
	}
	bitDepth := int(dec.BitDepth)
	if !supportedDepth(bitDepth) {
		return nil, fmt.Errorf("audio: unsupported bit depth: %d", bitDepth)
	}

	frames := len(buf.Data) / channels
	c := NewClip(buf.Format.SampleRate, bitDepth, frames)
	scale := 1 / float64(int64(1)<<(bitDepth-1))
	for i := 0; i < frames; i++ {
		c.Left[i] = float64(buf.Data[i*channels])
		if channels > 1 {
			c.Right[i] = float64(buf.Data[i*channels+1])
		} else {
			c.Right[i] = c.Left[i]
		}
	}
	f64.Scale(c.Left, c.Left, scale)
	f64.Scale(c.Right, c.Right, scale)

	return c, nil
}

// Encode writes c as a stereo PCM WAV at its bit depth (16 when unset).
// Samples are clipped to full scale.
func Encode(w io.WriteSeeker, c *Clip) error {
	bitDepth := c.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	if !supportedDepth(bitDepth) {
		return fmt.Errorf("audio: unsupported bit depth: %d", bitDepth)
	}

	inter := make([]float64, 2*c.Frames())
	f64.Interleave2(inter, c.Left, c.Right)

	full := float64(int64(1)<<(bitDepth-1)) - 1
	data := make([]int, len(inter))
	for i, v := range inter {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * full))
	}

	enc := wav.NewEncoder(w, c.SampleRate, bitDepth, 2, 1)
	if err := enc.Write(&goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: c.SampleRate, NumChannels: 2},
		SourceBitDepth: bitDepth,
	}); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}
	return nil
}

func supportedDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile encodes c into a new WAV file at path.
func WriteFile(path string, c *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
