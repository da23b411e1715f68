// Package session binds an interpreter, its clock driver and the host input
// latch together into the unit that frontends run frame by frame.
package session

import (
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// Session is a running emulation that frontends advance once per host frame.
type Session struct {
	logger  *log.Logger
	machine *vm.Interpreter
	driver  *clock.Driver
	latch   input.Latch
}

// New returns a new session for the interpreter.
func New(logger *log.Logger, machine *vm.Interpreter, cfg clock.Config) (*Session, error) {
	driver, err := clock.New(machine, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating clock driver: %w", err)
	}

	return &Session{
		logger:  logger,
		machine: machine,
		driver:  driver,
	}, nil
}

// Frame applies the latched input to the keypad and advances the emulation
// by the elapsed host time.
func (s *Session) Frame(elapsed time.Duration) (clock.Result, error) {
	keys := s.latch.Snapshot()
	for key, pressed := range keys {
		s.machine.SetKey(key, pressed)
	}

	result, err := s.driver.Advance(elapsed)
	if err != nil {
		return result, fmt.Errorf("advancing frame: %w", err)
	}
	return result, nil
}

// Input returns the input latch that host input code writes to.
func (s *Session) Input() *input.Latch {
	return &s.latch
}

// Machine returns the interpreter for display and sound state access.
func (s *Session) Machine() *vm.Interpreter {
	return s.machine
}

// Restart restarts the loaded program and drops the accumulated frame time.
func (s *Session) Restart() {
	s.machine.Restart()
	s.driver.Reset()
	s.logger.Info("Program restarted")
}

// Resume drops the time accumulated while the host loop was not running.
func (s *Session) Resume() {
	s.driver.Reset()
}
