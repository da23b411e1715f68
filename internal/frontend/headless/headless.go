// Package headless runs an emulation for a fixed number of frames without
// any display or input device and prints the final display as text.
package headless

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrogolib/log"
)

// Frontend runs frames of simulated time as fast as possible.
type Frontend struct {
	logger *log.Logger
	output io.Writer
	frames int
}

// New returns a new headless frontend that writes the final display to output.
func New(logger *log.Logger, output io.Writer, frames int) *Frontend {
	return &Frontend{
		logger: logger,
		output: output,
		frames: frames,
	}
}

// Run advances the session by the configured number of 60 Hz frames and
// writes the display. The display is also written when the program faults.
func (f *Frontend) Run(ctx context.Context, s *session.Session) error {
	var steps, redraws int
	var runErr error

	for frame := 0; frame < f.frames; frame++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running frame %d: %w", frame, err)
		}

		result, err := s.Frame(clock.TimerPeriod)
		steps += result.Steps
		if result.Redraw {
			redraws++
		}
		if err != nil {
			runErr = fmt.Errorf("running frame %d: %w", frame, err)
			break
		}
	}

	f.logger.Debug("Headless run finished",
		log.Int("steps", steps),
		log.Int("redraws", redraws),
		log.Stringer("state", s.Machine().State()))

	if _, err := io.WriteString(f.output, s.Machine().Display().String()); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return runErr
}
