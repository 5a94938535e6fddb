package audio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// DefaultBlockFrames is the render block used by Stream.
const DefaultBlockFrames = 512

// Stream renders a clip through a Renderer on demand and serves the result
// as interleaved little-endian float32 stereo frames, the layout oto
// expects. Parameters stored in the renderer's Control take effect at the
// next block.
type Stream struct {
	ren   *reverb.Renderer
	src   *Clip
	pos   int
	total int

	left, right []float64
	inter       []float64
	pending     []byte
	buf         []byte
}

// NewStream plays src followed by tailFrames of silence.
func NewStream(ren *reverb.Renderer, src *Clip, tailFrames int) *Stream {
	return &Stream{
		ren:   ren,
		src:   src,
		total: src.Frames() + max(tailFrames, 0),
		left:  make([]float64, DefaultBlockFrames),
		right: make([]float64, DefaultBlockFrames),
		inter: make([]float64, 2*DefaultBlockFrames),
		buf:   make([]byte, 8*DefaultBlockFrames),
	}
}

// Position returns the number of frames rendered so far.
func (s *Stream) Position() int { return s.pos }

// Frames returns the total stream length.
func (s *Stream) Frames() int { return s.total }

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.pos >= s.total {
				break
			}
			if err := s.renderBlock(); err != nil {
				return n, err
			}
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *Stream) renderBlock() error {
	frames := min(DefaultBlockFrames, s.total-s.pos)
	left, right := s.left[:frames], s.right[:frames]

	for i := range left {
		j := s.pos + i
		if j < s.src.Frames() {
			left[i], right[i] = s.src.Left[j], s.src.Right[j]
		} else {
			left[i], right[i] = 0, 0
		}
	}

	if err := s.ren.Render(left, right); err != nil {
		return err
	}

	inter := s.inter[:2*frames]
	f64.Interleave2(inter, left, right)

	out := s.buf[:4*len(inter)]
	for i, v := range inter {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(v)))
	}

	s.pending = out
	s.pos += frames
	return nil
}
