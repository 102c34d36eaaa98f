package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/massung/chip-8/render"
)

/// CyclesPerFrame is how many instructions run between two redraws in
/// terminal mode, keeping the same speed as the windowed clock.
///
const CyclesPerFrame = int(RefreshRate / ClockRate)

/// RunTerminal runs the VM headless and draws every frame as text until
/// interrupted, halted, or the requested number of frames was shown.
///
func RunTerminal(opts Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := render.NewTerminal(os.Stdout, int(os.Stdout.Fd()))

	video := time.NewTicker(RefreshRate)
	defer video.Stop()

	for frames := 0; opts.Frames == 0 || frames < opts.Frames; frames++ {
		for i := 0; i < CyclesPerFrame; i++ {
			Step()
		}

		if err := out.Draw(VM.Frame()); err != nil {
			return err
		}

		if Halted {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-video.C:
		}
	}

	return nil
}
