package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// loadEnv reads the optional .env file and fills unset REVERB_* keys with
// the engine defaults.
func loadEnv(ctx context.Context) error {
	envFile := os.Getenv("REVERB_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if _, statErr := os.Stat(envFile); !os.IsNotExist(statErr) {
			return errors.Wrapf(err, "load %v", envFile)
		}
	}

	d := reverb.DefaultParams()
	setEnvDefault("REVERB_SAMPLE_RATE", "48000")
	setEnvDefault("REVERB_SEED", "1")
	setEnvDefault("REVERB_REVERSE", ftoa(d.Reverse))
	setEnvDefault("REVERB_PREDELAY", ftoa(d.Predelay))
	setEnvDefault("REVERB_SIZE", ftoa(d.Size))
	setEnvDefault("REVERB_SPEED", ftoa(d.Speed))
	setEnvDefault("REVERB_DEPTH", ftoa(d.Depth))
	setEnvDefault("REVERB_ABSORB", ftoa(d.Absorb))
	setEnvDefault("REVERB_DECAY", ftoa(d.Decay))
	setEnvDefault("REVERB_TILT", ftoa(d.Tilt))
	setEnvDefault("REVERB_SHIMMER", ftoa(d.Shimmer))
	setEnvDefault("REVERB_MIX", ftoa(d.Mix))
	setEnvDefault("REVERB_TAIL", "3")

	logger.Tf(ctx, "load env file=%v, REVERB_SAMPLE_RATE=%v, REVERB_SIZE=%v, REVERB_DECAY=%v, REVERB_MIX=%v, "+
		"REVERB_DEPTH=%v, REVERB_SHIMMER=%v, REVERB_TAIL=%v",
		envFile, os.Getenv("REVERB_SAMPLE_RATE"), os.Getenv("REVERB_SIZE"), os.Getenv("REVERB_DECAY"),
		os.Getenv("REVERB_MIX"), os.Getenv("REVERB_DEPTH"), os.Getenv("REVERB_SHIMMER"), os.Getenv("REVERB_TAIL"))

	return nil
}

// setEnvDefault set env key=value if not set.
func setEnvDefault(key, value string) {
	if os.Getenv(key) == "" {
		os.Setenv(key, value)
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// envFloat parses key, falling back to def when unset or malformed.
func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

// engineConfig is shared by every command that builds an engine.
type engineConfig struct {
	sampleRate float64
	seed       int64
	params     reverb.Params
}

// bindEngineFlags registers the parameter flags on fs with defaults from
// the environment.
func bindEngineFlags(fs *flag.FlagSet, c *engineConfig) {
	d := reverb.DefaultParams()
	fs.Float64Var(&c.sampleRate, "rate", envFloat("REVERB_SAMPLE_RATE", 48000), "sample rate in Hz (render only; others use the input rate)")
	fs.Int64Var(&c.seed, "seed", int64(envFloat("REVERB_SEED", 1)), "grain random seed")
	fs.Float64Var(&c.params.Reverse, "reverse", envFloat("REVERB_REVERSE", d.Reverse), "reverse amount 0..1")
	fs.Float64Var(&c.params.Predelay, "predelay", envFloat("REVERB_PREDELAY", d.Predelay), "pre-delay in ms")
	fs.Float64Var(&c.params.Size, "size", envFloat("REVERB_SIZE", d.Size), "room size")
	fs.Float64Var(&c.params.Speed, "speed", envFloat("REVERB_SPEED", d.Speed), "modulation rate in Hz")
	fs.Float64Var(&c.params.Depth, "depth", envFloat("REVERB_DEPTH", d.Depth), "modulation depth -1..1 (negative vibrato, positive grains)")
	fs.Float64Var(&c.params.Absorb, "absorb", envFloat("REVERB_ABSORB", d.Absorb), "absorption 0..1")
	fs.Float64Var(&c.params.Decay, "decay", envFloat("REVERB_DECAY", d.Decay), "feedback decay 0..1.2")
	fs.Float64Var(&c.params.Tilt, "tilt", envFloat("REVERB_TILT", d.Tilt), "tone tilt -1..1")
	fs.Float64Var(&c.params.Shimmer, "shimmer", envFloat("REVERB_SHIMMER", d.Shimmer), "octave-up shimmer 0..1")
	fs.Float64Var(&c.params.Mix, "mix", envFloat("REVERB_MIX", d.Mix), "dry/wet mix 0..1")
}

func (c *engineConfig) newReverb(sampleRate float64) (*reverb.Reverb, error) {
	if err := c.params.Validate(core.DefaultLimits()); err != nil {
		return nil, errors.Wrapf(err, "params")
	}

	r, err := reverb.New(sampleRate, reverb.WithSeed(c.seed))
	if err != nil {
		return nil, errors.Wrapf(err, "new reverb rate=%v", sampleRate)
	}
	r.InitializeParams(c.params)

	return r, nil
}
