//go:build headless

package audio

import (
	"context"
	"errors"
	"io"
)

// ErrNoPlayback is returned by Play in headless builds.
var ErrNoPlayback = errors.New("audio: playback not available in headless build")

// Play reports ErrNoPlayback; headless builds carry no output device.
func Play(ctx context.Context, r io.Reader, sampleRate int) error {
	return ErrNoPlayback
}
