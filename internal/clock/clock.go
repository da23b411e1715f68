// Package clock implements the fixed timestep driver that converts elapsed host
// time into interpreter steps and 60Hz timer ticks.
package clock

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Default rates.
const (
	DefaultCPURate   = 700
	TimerRate        = 60
	DefaultTickLimit = 6
)

// TimerPeriod is the interval between two timer ticks.
const TimerPeriod = time.Second / TimerRate

var errInvalidRate = errors.New("cpu rate must be positive")

// Machine is the interface of the interpreter that the driver runs.
type Machine interface {
	Step() (vm.Event, error)
	TickTimers()
}

// Config contains the driver settings, zero values select the defaults.
type Config struct {
	CPURate          int // instructions per second
	MaxStepsPerFrame int // step cap per Advance call, defaults to a tenth of the rate
	MaxTicksPerFrame int // timer tick cap per Advance call
}

// Result contains the work done by a single Advance call.
type Result struct {
	Steps  int  // executed instructions
	Ticks  int  // timer ticks
	Redraw bool // whether any instruction changed the display
}

// Driver accumulates elapsed time and runs steps and timer ticks when they are due.
type Driver struct {
	machine Machine

	cpuPeriod time.Duration
	maxSteps  int
	maxTicks  int

	cpuAccumulator   time.Duration
	timerAccumulator time.Duration
}

// New returns a new driver for the given machine.
func New(machine Machine, cfg Config) (*Driver, error) {
	if cfg.CPURate == 0 {
		cfg.CPURate = DefaultCPURate
	}
	if cfg.CPURate < 0 || cfg.MaxStepsPerFrame < 0 || cfg.MaxTicksPerFrame < 0 {
		return nil, fmt.Errorf("%w: rate %d, step limit %d, tick limit %d",
			errInvalidRate, cfg.CPURate, cfg.MaxStepsPerFrame, cfg.MaxTicksPerFrame)
	}
	if cfg.MaxStepsPerFrame == 0 {
		cfg.MaxStepsPerFrame = max(1, cfg.CPURate/10)
	}
	if cfg.MaxTicksPerFrame == 0 {
		cfg.MaxTicksPerFrame = DefaultTickLimit
	}

	return &Driver{
		machine:   machine,
		cpuPeriod: time.Second / time.Duration(cfg.CPURate),
		maxSteps:  cfg.MaxStepsPerFrame,
		maxTicks:  cfg.MaxTicksPerFrame,
	}, nil
}

// Advance adds the elapsed time to the accumulators and runs all due steps
// and timer ticks. A step error ends the steps of this call, the due timer
// ticks still run so that the timers of a halted machine count down.
func (d *Driver) Advance(elapsed time.Duration) (Result, error) {
	var result Result
	var stepErr error
	if elapsed < 0 {
		elapsed = 0
	}
	d.cpuAccumulator += elapsed
	d.timerAccumulator += elapsed

	for d.cpuAccumulator >= d.cpuPeriod {
		if result.Steps == d.maxSteps {
			d.cpuAccumulator %= d.cpuPeriod
			break
		}

		event, err := d.machine.Step()
		if err != nil {
			d.cpuAccumulator = 0
			stepErr = fmt.Errorf("executing step: %w", err)
			break
		}
		if event == vm.EventIdle {
			// a stalled machine does not build up a backlog of steps
			d.cpuAccumulator = 0
			break
		}

		d.cpuAccumulator -= d.cpuPeriod
		result.Steps++
		if event == vm.EventRedraw {
			result.Redraw = true
		}
	}

	for d.timerAccumulator >= TimerPeriod {
		if result.Ticks == d.maxTicks {
			d.timerAccumulator %= TimerPeriod
			break
		}
		d.machine.TickTimers()
		d.timerAccumulator -= TimerPeriod
		result.Ticks++
	}

	return result, stepErr
}

// Reset drops all accumulated time, used after pauses and restarts.
func (d *Driver) Reset() {
	d.cpuAccumulator = 0
	d.timerAccumulator = 0
}

// CPUPeriod returns the duration of a single instruction.
func (d *Driver) CPUPeriod() time.Duration {
	return d.cpuPeriod
}
