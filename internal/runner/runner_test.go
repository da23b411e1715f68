package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type frontendFunc func(ctx context.Context, s *session.Session) error

func (f frontendFunc) Run(ctx context.Context, s *session.Session) error {
	return f(ctx, s)
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

func testOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags: options.Flags{
			Frontend: options.FrontendHeadless,
			Rate:     options.DefaultRate,
			Frames:   10,
			Quiet:    true,
		},
	}
}

func TestNew(t *testing.T) {
	r := New(log.NewTestLogger(t), &bytes.Buffer{})
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.detector)
	assert.NotNil(t, r.loader)
}

func TestExecuteDisasm(t *testing.T) {
	input := createTempFile(t, "test.ch8", []byte{0x12, 0x34, 0x00, 0xE0})
	opts := testOptions(input)
	opts.Disasm = true

	var buf bytes.Buffer
	r := New(log.NewTestLogger(t), &buf)
	called := false
	err := r.Execute(context.Background(), opts, frontendFunc(func(context.Context, *session.Session) error {
		called = true
		return nil
	}))
	assert.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, "$200  12 34  jp $234\n$202  00 E0  cls\n", buf.String())
}

func TestExecuteHeadless(t *testing.T) {
	rom := []byte{
		0x60, 0x08, // ld v0, $08
		0xF0, 0x29, // ld f, v0
		0xD1, 0x15, // drw v1, v1, 5
		0x12, 0x06, // jp $206
	}
	input := createTempFile(t, "test.ch8", rom)

	var out bytes.Buffer
	logger := log.NewTestLogger(t)
	r := New(logger, &bytes.Buffer{})
	err := r.Execute(context.Background(), testOptions(input), headless.New(logger, &out, 10))
	assert.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "####"))
	assert.True(t, strings.HasPrefix(lines[1], "#..#"))
	assert.True(t, strings.HasPrefix(lines[2], "####"))
}

func TestExecuteFault(t *testing.T) {
	input := createTempFile(t, "test.ch8", []byte{0x00, 0xEE})

	logger := log.NewTestLogger(t)
	r := New(logger, &bytes.Buffer{})
	err := r.Execute(context.Background(), testOptions(input), headless.New(logger, &bytes.Buffer{}, 10))
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "running frontend")
}

func TestExecuteErrors(t *testing.T) {
	noop := frontendFunc(func(context.Context, *session.Session) error { return nil })

	t.Run("missing rom", func(t *testing.T) {
		r := New(log.NewTestLogger(t), &bytes.Buffer{})
		err := r.Execute(context.Background(), testOptions("/nonexistent/file.ch8"), noop)
		assert.ErrorContains(t, err, "loading rom")
	})

	t.Run("rom too large", func(t *testing.T) {
		input := createTempFile(t, "big.ch8", make([]byte, vm.MaxROMSize+1))
		r := New(log.NewTestLogger(t), &bytes.Buffer{})
		err := r.Execute(context.Background(), testOptions(input), noop)
		assert.True(t, errors.Is(err, vm.ErrROMTooLarge))
	})

	t.Run("unknown profile", func(t *testing.T) {
		input := createTempFile(t, "test.ch8", []byte{0x12, 0x00})
		opts := testOptions(input)
		opts.Profile = "xochip"
		r := New(log.NewTestLogger(t), &bytes.Buffer{})
		err := r.Execute(context.Background(), opts, noop)
		assert.ErrorContains(t, err, "resolving quirks")
	})

	t.Run("invalid save state", func(t *testing.T) {
		input := createTempFile(t, "test.ch8", []byte{0x12, 0x00})
		opts := testOptions(input)
		opts.Load = createTempFile(t, "bad.state", []byte("not a zip"))
		r := New(log.NewTestLogger(t), &bytes.Buffer{})
		err := r.Execute(context.Background(), opts, noop)
		assert.True(t, errors.Is(err, vm.ErrInvalidSnapshot))
	})
}

func TestExecuteSaveAndLoadState(t *testing.T) {
	rom := []byte{
		0x65, 0x2A, // ld v5, $2A
		0xF3, 0x0A, // ld v3, k
		0x12, 0x04, // jp $204
	}
	input := createTempFile(t, "test.c8", rom)
	statePath := filepath.Join(t.TempDir(), "test.state")
	logger := log.NewTestLogger(t)

	opts := testOptions(input)
	opts.Save = statePath
	r := New(logger, &bytes.Buffer{})
	assert.NoError(t, r.Execute(context.Background(), opts, headless.New(logger, &bytes.Buffer{}, 1)))

	opts = testOptions(input)
	opts.Load = statePath
	var restored vm.Registers
	var state vm.State
	var quirks vm.Quirks
	err := r.Execute(context.Background(), opts, frontendFunc(func(_ context.Context, s *session.Session) error {
		restored = s.Machine().Registers()
		state = s.Machine().State()
		quirks = s.Machine().Quirks()
		return nil
	}))
	assert.NoError(t, err)
	assert.Equal(t, byte(0x2A), restored.V[5])
	assert.Equal(t, vm.WaitingForKey, state)
	assert.Equal(t, vm.COSMACQuirks(), quirks)
}

func TestExecuteSeed(t *testing.T) {
	input := createTempFile(t, "test.ch8", []byte{
		0xC0, 0xFF, // rnd v0, $FF
		0xC1, 0xFF, // rnd v1, $FF
		0x12, 0x04, // jp $204
	})
	opts := testOptions(input)
	opts.Seed = 1234

	var values [2][2]byte
	for i := range values {
		r := New(log.NewTestLogger(t), &bytes.Buffer{})
		err := r.Execute(context.Background(), opts, frontendFunc(func(_ context.Context, s *session.Session) error {
			_, err := s.Frame(clock.TimerPeriod)
			regs := s.Machine().Registers()
			values[i] = [2]byte{regs.V[0], regs.V[1]}
			return err
		}))
		assert.NoError(t, err)
	}
	assert.Equal(t, values[0], values[1])
}
