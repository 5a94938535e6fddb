// Command reverb renders, processes, plays and analyzes audio with the
// algorithmic reverb.
//
// Usage:
//
//	reverb render  [flags] -o ir.wav
//	reverb process [flags] -i dry.wav -o wet.wav
//	reverb play    [flags] -i dry.wav
//	reverb analyze [flags] -i ir.wav
//
// Parameter defaults come from REVERB_* environment variables, optionally
// loaded from the .env file named by REVERB_ENV (./.env by default).
// Flags override the environment.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
)

func main() {
	ctx := logger.WithContext(context.Background())

	if err := doMain(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Ef(ctx, "run err %+v", err)
		os.Exit(1)
	}

	logger.Tf(ctx, "run ok")
}

func doMain(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return errors.New("missing command")
	}

	if err := loadEnv(ctx); err != nil {
		return errors.Wrapf(err, "load env")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer signal.Stop(sc)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case s := <-sc:
			logger.Tf(ctx, "Got signal %v", s)
			cancel()
		case <-ctx.Done():
		}
	}()

	name, rest := args[0], args[1:]
	switch name {
	case "render":
		return runRender(ctx, rest)
	case "process":
		return runProcess(ctx, rest)
	case "play":
		return runPlay(ctx, rest)
	case "analyze":
		return runAnalyze(ctx, rest, stdout)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	}

	usage(stdout)
	return errors.Errorf("unknown command %v", name)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: reverb <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  render   write the impulse response for the given parameters\n")
	fmt.Fprintf(w, "  process  run a WAV file through the reverb\n")
	fmt.Fprintf(w, "  play     run a WAV file through the reverb to the audio device\n")
	fmt.Fprintf(w, "  analyze  print decay metrics and octave bands of an impulse response\n")
	fmt.Fprintf(w, "\nRun 'reverb <command> -h' for command flags.\n")
}
