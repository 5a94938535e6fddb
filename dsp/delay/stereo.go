package delay

// StereoLine is a pair of equally sized Lines.
type StereoLine struct {
	left, right *Line
}

// NewStereo returns a stereo delay holding maxDelayMs per channel.
func NewStereo(sampleRate, maxDelayMs float64, opts ...Option) (*StereoLine, error) {
	l, err := New(sampleRate, maxDelayMs, opts...)
	if err != nil {
		return nil, err
	}
	r, err := New(sampleRate, maxDelayMs, opts...)
	if err != nil {
		return nil, err
	}
	return &StereoLine{left: l, right: r}, nil
}

// Write stores one frame.
func (s *StereoLine) Write(l, r float64) {
	s.left.Write(l)
	s.right.Write(r)
}

// Read returns the frame ms milliseconds behind the write cursor.
func (s *StereoLine) Read(ms float64) (float64, float64) {
	return s.left.Read(ms), s.right.Read(ms)
}

// Channels exposes the two lines.
func (s *StereoLine) Channels() (*Line, *Line) {
	return s.left, s.right
}

// Reset clears both channels.
func (s *StereoLine) Reset() {
	s.left.Reset()
	s.right.Reset()
}
