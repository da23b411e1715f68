// Package terminal runs an emulation inside an ANSI terminal with the
// keyboard read from a raw mode stdin.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Terminals report no key releases, a key press is held for this many frames.
const tapFrames = 8

// Control keys read from the raw terminal.
const (
	keyCtrlC  = 0x03
	keyCtrlR  = 0x12
	keyEscape = 0x1b
)

var errStdinNotTerminal = errors.New("stdin is not a terminal")

// Beeper plays the sound timer tone.
type Beeper interface {
	SetActive(active bool)
}

// Frontend renders the display to stdout and reads keys from stdin.
type Frontend struct {
	logger *log.Logger
	beeper Beeper
	output io.Writer
}

// New returns a new terminal frontend.
func New(logger *log.Logger, beeper Beeper) *Frontend {
	return &Frontend{
		logger: logger,
		beeper: beeper,
		output: os.Stdout,
	}
}

// Run runs the session until the context is cancelled, Escape or Ctrl-C is
// pressed or the program faults. Ctrl-R restarts the program.
func (f *Frontend) Run(ctx context.Context, s *session.Session) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errStdinNotTerminal
	}

	if width, height, err := term.GetSize(fd); err == nil {
		if width < vm.DisplayWidth || height < vm.DisplayHeight/2 {
			f.logger.Warn("Terminal is smaller than the display",
				log.Int("width", width),
				log.Int("height", height))
		}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(f.output, showCursor)
		_ = term.Restore(fd, oldState)
	}()

	keys := make(chan byte, 16)
	done := make(chan struct{})
	defer close(done)
	go readKeys(os.Stdin, keys, done)

	if _, err := io.WriteString(f.output, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	if err := f.draw(s); err != nil {
		return err
	}
	defer f.beeper.SetActive(false)

	return f.loop(ctx, s, keys)
}

func (f *Frontend) loop(ctx context.Context, s *session.Session, keys <-chan byte) error {
	ticker := time.NewTicker(clock.TimerPeriod)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running terminal frontend: %w", ctx.Err())

		case b, ok := <-keys:
			if !ok {
				return nil
			}
			quit, err := f.handleKey(s, b)
			if quit || err != nil {
				return err
			}

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if err := f.frame(s, elapsed); err != nil {
				return err
			}
		}
	}
}

// handleKey processes a byte read from the terminal and returns whether
// the frontend should quit.
func (f *Frontend) handleKey(s *session.Session, b byte) (bool, error) {
	switch b {
	case keyCtrlC, keyEscape:
		return true, nil

	case keyCtrlR:
		s.Restart()
		return false, f.draw(s)

	default:
		if key, ok := input.KeyForRune(rune(b)); ok {
			s.Input().Tap(key, tapFrames)
		}
		return false, nil
	}
}

func (f *Frontend) frame(s *session.Session, elapsed time.Duration) error {
	result, err := s.Frame(elapsed)
	f.beeper.SetActive(s.Machine().SoundActive())
	if err != nil {
		_ = f.draw(s)
		return fmt.Errorf("running frame: %w", err)
	}
	if result.Redraw {
		return f.draw(s)
	}
	return nil
}

func (f *Frontend) draw(s *session.Session) error {
	if _, err := io.WriteString(f.output, cursorHome+Render(s.Machine().Display())); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// readKeys forwards bytes read from r until reading fails or done is closed.
// The keys channel is closed when reading stops.
func readKeys(r io.Reader, keys chan<- byte, done <-chan struct{}) {
	defer close(keys)
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case keys <- b:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}
