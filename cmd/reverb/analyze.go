package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-reverb/internal/audio"
	"github.com/cwbudde/algo-reverb/measure/ir"
	"github.com/cwbudde/algo-reverb/measure/response"
)

func runAnalyze(ctx context.Context, args []string, stdout io.Writer) error {
	var input string
	var floor float64

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.StringVar(&input, "i", "", "impulse response WAV path")
	fs.Float64Var(&floor, "floor", 0, "noise floor in dB below peak for truncation, 0 disables")
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
	rate := float64(clip.SampleRate)
	logger.Tf(ctx, "analyze input=%v, rate=%v, frames=%v", input, clip.SampleRate, clip.Frames())

	var opts []ir.Option
	if floor != 0 {
		opts = append(opts, ir.WithNoiseFloor(-math.Abs(floor)))
	}
	a, err := ir.New(rate, opts...)
	if err != nil {
		return errors.Wrapf(err, "analyzer")
	}
	m, err := a.AnalyzeStereo(clip.Left, clip.Right)
	if err != nil {
		return errors.Wrapf(err, "analyze")
	}

	spec, err := response.Measure(clip.Left, rate)
	if err != nil {
		return errors.Wrapf(err, "response")
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "metric\tleft\tright\n")
	rows := []struct {
		name        string
		left, right float64
		format      string
	}{
		{"RT60 (s)", m.Left.RT60, m.Right.RT60, "%.3f"},
		{"EDT (s)", m.Left.EDT, m.Right.EDT, "%.3f"},
		{"T20 (s)", m.Left.T20, m.Right.T20, "%.3f"},
		{"T30 (s)", m.Left.T30, m.Right.T30, "%.3f"},
		{"C50 (dB)", m.Left.C50, m.Right.C50, "%.1f"},
		{"C80 (dB)", m.Left.C80, m.Right.C80, "%.1f"},
		{"D50", m.Left.D50, m.Right.D50, "%.3f"},
		{"center (s)", m.Left.CenterTime, m.Right.CenterTime, "%.3f"},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t"+r.format+"\t"+r.format+"\n", r.name, r.left, r.right)
	}
	fmt.Fprintf(w, "correlation\t%.3f\t\n", m.Correlation)

	fmt.Fprintf(w, "\nband (Hz)\tlevel (dB)\t\n")
	for _, b := range spec.OctaveBands() {
		fmt.Fprintf(w, "%.0f\t%.1f\t\n", b.CenterHz, b.Level)
	}

	return w.Flush()
}

