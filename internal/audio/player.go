//go:build !headless

package audio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Play streams r (interleaved float32LE stereo) to the default output
// device until r is drained or ctx is cancelled.
func Play(ctx context.Context, r io.Reader, sampleRate int) error {
	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio: open output: %w", err)
	}
	<-ready

	player := octx.NewPlayer(r)
	defer player.Close()
	player.Play()

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-tick.C:
		}
	}

	return player.Err()
}
