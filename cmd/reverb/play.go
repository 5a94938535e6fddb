package main

import (
	"context"
	"flag"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/internal/audio"
)

func runPlay(ctx context.Context, args []string) error {
	var c engineConfig
	var input string
	var tail float64

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	bindEngineFlags(fs, &c)
	fs.StringVar(&input, "i", "", "input WAV path")
	fs.Float64Var(&tail, "tail", envFloat("REVERB_TAIL", 3), "seconds of tail played after the input")
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "parse flags")
	}
	if input == "" {
		return errors.New("missing input, use -i")
	}

	clip, err := audio.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "read %v", input)
	}

	r, err := c.newReverb(float64(clip.SampleRate))
	if err != nil {
		return errors.Wrapf(err, "play")
	}

	stream := audio.NewStream(reverb.NewRenderer(r, reverb.NewControl(c.params)), clip,
		int(tail*float64(clip.SampleRate)))
	logger.Tf(ctx, "play input=%v, rate=%v, frames=%v", input, clip.SampleRate, stream.Frames())

	if err := audio.Play(ctx, stream, clip.SampleRate); err != nil {
		if ctx.Err() != nil {
			logger.Tf(ctx, "play stopped at frame %v", stream.Position())
			return nil
		}
		return errors.Wrapf(err, "play %v", input)
	}
	logger.Tf(ctx, "play ok, frames=%v", stream.Position())

	return nil
}
