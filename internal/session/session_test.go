package session

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestSession(t *testing.T, rom []byte) *Session {
	t.Helper()
	logger := log.NewTestLogger(t)
	machine := vm.New(logger, vm.Config{})
	assert.NoError(t, machine.Load(rom))

	s, err := New(logger, machine, clock.Config{CPURate: 600})
	assert.NoError(t, err)
	return s
}

func TestFrameRunsSteps(t *testing.T) {
	// 6001: V0 = 1, 1202: loop on the jump
	s := newTestSession(t, []byte{0x60, 0x01, 0x12, 0x02})

	result, err := s.Frame(clock.TimerPeriod)
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Steps)
	assert.Equal(t, 1, result.Ticks)
	assert.Equal(t, byte(1), s.Machine().Registers().V[0])
}

func TestFrameAppliesInput(t *testing.T) {
	// F30A: wait for key into V3, 1202: loop
	s := newTestSession(t, []byte{0xF3, 0x0A, 0x12, 0x02})

	_, err := s.Frame(clock.TimerPeriod)
	assert.NoError(t, err)
	assert.Equal(t, vm.WaitingForKey, s.Machine().State())

	s.Input().Tap(0xE, 1)
	_, err = s.Frame(clock.TimerPeriod)
	assert.NoError(t, err)
	assert.Equal(t, vm.Running, s.Machine().State())
	assert.Equal(t, byte(0xE), s.Machine().Registers().V[3])
}

func TestFrameFault(t *testing.T) {
	s := newTestSession(t, []byte{0x00, 0xEE})

	_, err := s.Frame(clock.TimerPeriod)
	assert.True(t, errors.Is(err, vm.ErrStackUnderflow))
	assert.ErrorContains(t, err, "advancing frame")
}

func TestRestart(t *testing.T) {
	s := newTestSession(t, []byte{0x60, 0x01, 0x12, 0x02})
	_, err := s.Frame(clock.TimerPeriod)
	assert.NoError(t, err)

	s.Restart()
	assert.Equal(t, byte(0), s.Machine().Registers().V[0])
	assert.Equal(t, uint16(vm.ProgramStart), s.Machine().Registers().PC)
}

func TestNewInvalidRate(t *testing.T) {
	logger := log.NewTestLogger(t)
	_, err := New(logger, vm.New(logger, vm.Config{}), clock.Config{CPURate: -5})
	assert.Error(t, err)
}
