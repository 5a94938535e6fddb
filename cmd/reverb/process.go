package main

import (
	"context"
	"flag"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/internal/audio"
	timestats "github.com/cwbudde/algo-reverb/stats/time"
)

// processBlockFrames is the block size for offline processing.
const processBlockFrames = 4096

func runProcess(ctx context.Context, args []string) error {
	var c engineConfig
	var input, output string
	var tail float64

	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	bindEngineFlags(fs, &c)
	fs.StringVar(&input, "i", "", "input WAV path")
	fs.StringVar(&output, "o", "wet.wav", "output WAV path")
	fs.Float64Var(&tail, "tail", envFloat("REVERB_TAIL", 3), "seconds of tail appended after the input")
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "parse flags")
	}
	if input == "" {
		return errors.New("missing input, use -i")
	}
	if tail < 0 {
		return errors.Errorf("invalid tail %v", tail)
	}

	clip, err := audio.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "read %v", input)
	}
	logger.Tf(ctx, "process input=%v, rate=%v, bits=%v, frames=%v", input, clip.SampleRate, clip.BitDepth, clip.Frames())

	r, err := c.newReverb(float64(clip.SampleRate))
	if err != nil {
		return errors.Wrapf(err, "process")
	}

	clip.Extend(int(tail * float64(clip.SampleRate)))
	if err := processClip(ctx, reverb.NewRenderer(r, reverb.NewControl(c.params)), clip); err != nil {
		return errors.Wrapf(err, "process %v", input)
	}

	left, right := timestats.Calculate(clip.Left), timestats.Calculate(clip.Right)
	logger.Tf(ctx, "process levels left peak=%.1fdBFS rms=%.1fdBFS, right peak=%.1fdBFS rms=%.1fdBFS",
		left.PeakdB(), left.RMSdB(), right.PeakdB(), right.RMSdB())
	if left.Peak > 1 || right.Peak > 1 {
		logger.Wf(ctx, "output exceeds full scale and will be clipped, peak=%.3f", max(left.Peak, right.Peak))
	}

	if err := audio.WriteFile(output, clip); err != nil {
		return errors.Wrapf(err, "write %v", output)
	}
	logger.Tf(ctx, "process ok, file=%v, duration=%.3fs", output, clip.Duration())

	return nil
}

// processClip renders clip in place block by block, stopping early when
// ctx is cancelled.
func processClip(ctx context.Context, ren *reverb.Renderer, clip *audio.Clip) error {
	n := clip.Frames()
	next := n / 10
	for i := 0; i < n; i += processBlockFrames {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "cancelled at frame %v", i)
		}

		end := min(i+processBlockFrames, n)
		if err := ren.Render(clip.Left[i:end], clip.Right[i:end]); err != nil {
			return errors.Wrapf(err, "render frame %v", i)
		}

		if next > 0 && end >= next {
			logger.Tf(ctx, "process progress %v%%", 100*end/n)
			next += n / 10
		}
	}

	return nil
}
