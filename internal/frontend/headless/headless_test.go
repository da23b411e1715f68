package headless

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/session"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newSession(t *testing.T, rom []byte) *session.Session {
	t.Helper()
	logger := log.NewTestLogger(t)

	machine := vm.New(logger, vm.Config{})
	assert.NoError(t, machine.Load(rom))

	s, err := session.New(logger, machine, clock.Config{})
	assert.NoError(t, err)
	return s
}

func TestRunDrawsGlyph(t *testing.T) {
	rom := []byte{
		0x60, 0x00, // ld v0, $00
		0xF0, 0x29, // ld f, v0
		0xD0, 0x05, // drw v0, v0, 5
		0x12, 0x06, // jp $206
	}
	s := newSession(t, rom)

	var buf bytes.Buffer
	f := New(log.NewTestLogger(t), &buf, 2)
	assert.NoError(t, f.Run(context.Background(), s))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, vm.DisplayHeight)
	assert.True(t, strings.HasPrefix(lines[0], "####...."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#...."))
	assert.True(t, strings.HasPrefix(lines[4], "####...."))
	assert.Equal(t, strings.Repeat(".", vm.DisplayWidth), lines[5])
}

func TestRunFault(t *testing.T) {
	s := newSession(t, []byte{0x00, 0xEE})

	var buf bytes.Buffer
	f := New(log.NewTestLogger(t), &buf, 10)
	err := f.Run(context.Background(), s)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "running frame 0")
	assert.NotEmpty(t, buf.String())
}

func TestRunCancelled(t *testing.T) {
	s := newSession(t, []byte{0x12, 0x00})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	f := New(log.NewTestLogger(t), &buf, 10)
	err := f.Run(ctx, s)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, buf.String())
}
