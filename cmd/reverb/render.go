package main

import (
	"context"
	"flag"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-reverb/internal/audio"
	"github.com/cwbudde/algo-reverb/measure/ir"
)

func runRender(ctx context.Context, args []string) error {
	var c engineConfig
	var output string
	var seconds, peak float64
	var bits int
	var normalize bool

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	bindEngineFlags(fs, &c)
	fs.StringVar(&output, "o", "ir.wav", "output WAV path")
	fs.Float64Var(&seconds, "seconds", envFloat("REVERB_TAIL", 3), "response length in seconds")
	fs.IntVar(&bits, "bits", 24, "output bit depth (16, 24, 32)")
	fs.BoolVar(&normalize, "normalize", false, "normalize the response peak")
	fs.Float64Var(&peak, "peak", -1, "normalization peak in dBFS")
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "parse flags")
	}
	if seconds <= 0 {
		return errors.Errorf("invalid length %v", seconds)
	}

	r, err := c.newReverb(c.sampleRate)
	if err != nil {
		return errors.Wrapf(err, "render")
	}

	frames := int(seconds * c.sampleRate)
	if frames < 1 {
		return errors.Errorf("length %vs is shorter than one frame", seconds)
	}
	clip := audio.NewClip(int(c.sampleRate), bits, frames)
	clip.Left[0], clip.Right[0] = 1, 1
	logger.Tf(ctx, "render ir rate=%v, frames=%v, params=%+v", c.sampleRate, clip.Frames(), c.params)
	logger.Tf(ctx, "render tone 100Hz=%.1fdB, 1kHz=%.1fdB, 10kHz=%.1fdB",
		r.ToneDB(100), r.ToneDB(1000), r.ToneDB(10000))

	if err := r.ProcessBlock(clip.Left, clip.Right, c.params); err != nil {
		return errors.Wrapf(err, "process")
	}

	a, err := ir.New(c.sampleRate)
	if err != nil {
		return errors.Wrapf(err, "analyzer")
	}
	if m, err := a.AnalyzeStereo(clip.Left, clip.Right); err != nil {
		logger.Wf(ctx, "ignore analyze err %v", err)
	} else {
		logMetrics(ctx, m)
	}

	if normalize {
		g := clip.Normalize(peak)
		logger.Tf(ctx, "normalize peak=%vdBFS, gain=%.3f", peak, g)
	}

	if err := audio.WriteFile(output, clip); err != nil {
		return errors.Wrapf(err, "write %v", output)
	}
	logger.Tf(ctx, "render ok, file=%v, duration=%.3fs", output, clip.Duration())

	return nil
}

func logMetrics(ctx context.Context, m ir.StereoMetrics) {
	for _, ch := range []struct {
		name string
		m    ir.Metrics
	}{{"left", m.Left}, {"right", m.Right}} {
		logger.Tf(ctx, "ir %v RT60=%.3fs, EDT=%.3fs, C80=%.1fdB, D50=%.3f, center=%.3fs",
			ch.name, ch.m.RT60, ch.m.EDT, ch.m.C80, ch.m.D50, ch.m.CenterTime)
	}
	logger.Tf(ctx, "ir correlation=%.3f", m.Correlation)
}
