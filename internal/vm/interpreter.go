package vm

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/retroenv/retrogolib/log"
)

// State is the execution state of the interpreter.
type State int

// Interpreter states.
const (
	Running State = iota
	WaitingForKey
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event reports the outcome of a single step to the host.
type Event int

// Step events.
const (
	// EventIdle is returned when no instruction was executed.
	EventIdle Event = iota
	// EventExecuted is returned when an instruction was executed.
	EventExecuted
	// EventRedraw is returned when an instruction changed the display.
	EventRedraw
)

func (e Event) String() string {
	switch e {
	case EventIdle:
		return "idle"
	case EventExecuted:
		return "executed"
	case EventRedraw:
		return "redraw"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Config contains the construction time settings of an interpreter.
type Config struct {
	Quirks Quirks
	// Permissive treats invalid opcodes as no-ops instead of halting.
	Permissive bool
	// Rand is the random source of the CXNN instruction, a time seeded
	// source is used if not set.
	Rand *rand.Rand
}

// machine aggregates the state that is exclusively owned by the interpreter.
type machine struct {
	memory    Memory
	registers Registers
	stack     Stack
	display   Display
}

func (m *machine) reset() {
	m.memory.reset()
	m.registers.reset()
	m.stack.reset()
	m.display.clear()
}

// Interpreter executes CHIP-8 programs one instruction at a time.
type Interpreter struct {
	logger     *log.Logger
	quirks     Quirks
	permissive bool
	rand       *rand.Rand
	tracer     func(pc, opcode uint16)

	machine machine
	keys    Keypad
	rom     []byte

	state State
	wait  keyWait
	fault *Fault
}

// New returns a new interpreter in its reset state.
func New(logger *log.Logger, cfg Config) *Interpreter {
	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	in := &Interpreter{
		logger:     logger,
		quirks:     cfg.Quirks,
		permissive: cfg.Permissive,
		rand:       rnd,
	}
	in.Reset()
	return in
}

// Load places the ROM at ProgramStart after resetting the machine.
// An oversized ROM is rejected without changing the machine state.
func (in *Interpreter) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}

	in.rom = slices.Clone(rom)
	in.Restart()
	in.logger.Debug("ROM loaded",
		log.Hex("address", uint16(ProgramStart)),
		log.Int("size", len(rom)))
	return nil
}

// Reset puts memory, registers, stack and display into their construction state.
// The program area is left empty, use Restart to run the loaded ROM again.
func (in *Interpreter) Reset() {
	in.machine.reset()
	in.state = Running
	in.wait = keyWait{}
	in.fault = nil
}

// Restart resets the machine and places the last loaded ROM into memory again.
func (in *Interpreter) Restart() {
	in.Reset()
	in.machine.memory.loadProgram(in.rom)
}

// Step executes a single instruction.
func (in *Interpreter) Step() (Event, error) {
	switch in.state {
	case Halted:
		return EventIdle, in.fault

	case WaitingForKey:
		key, ok := in.wait.poll(&in.keys)
		if !ok {
			return EventIdle, nil
		}
		in.machine.registers.V[in.wait.register] = key
		in.state = Running
		return EventExecuted, nil
	}

	regs := &in.machine.registers
	pc := regs.PC & addressMask
	opcode := in.machine.memory.ReadWord(pc)
	regs.PC = pc + 2

	if in.tracer != nil {
		in.tracer(pc, opcode)
	}

	event, err := in.execute(instruction(opcode))
	if err == nil {
		return event, nil
	}

	if in.permissive && errors.Is(err, ErrInvalidOpcode) {
		in.logger.Debug("Ignoring invalid opcode",
			log.Hex("address", pc),
			log.Hex("opcode", opcode))
		return EventExecuted, nil
	}

	in.fault = &Fault{Err: err, PC: pc, Opcode: opcode}
	in.state = Halted
	in.logger.Warn("Interpreter halted",
		log.Hex("address", pc),
		log.Hex("opcode", opcode),
		log.Err(err))
	return EventIdle, in.fault
}

// TickTimers decrements the delay and sound timers if they are not zero.
func (in *Interpreter) TickTimers() {
	regs := &in.machine.registers
	if regs.DT > 0 {
		regs.DT--
	}
	if regs.ST > 0 {
		regs.ST--
	}
}

// SetKey sets the pressed state of a keypad key, invalid key indexes are ignored.
func (in *Interpreter) SetKey(key int, pressed bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	in.keys.set(key, pressed)
}

// SetTracer sets a function that gets called with the address and opcode
// of every instruction before it is executed.
func (in *Interpreter) SetTracer(tracer func(pc, opcode uint16)) {
	in.tracer = tracer
}

// Display returns a read only view of the frame buffer.
func (in *Interpreter) Display() *Display {
	return &in.machine.display
}

// SoundActive returns whether the sound timer is running.
func (in *Interpreter) SoundActive() bool {
	return in.machine.registers.ST > 0
}

// Registers returns a copy of the register file.
func (in *Interpreter) Registers() Registers {
	return in.machine.registers
}

// ReadMemory returns the byte at the given memory address.
func (in *Interpreter) ReadMemory(address uint16) byte {
	return in.machine.memory.Read(address)
}

// StackDepth returns the number of active subroutine calls.
func (in *Interpreter) StackDepth() int {
	return in.machine.stack.Depth()
}

// State returns the execution state.
func (in *Interpreter) State() State {
	return in.state
}

// Fault returns the fault that halted the interpreter or nil.
func (in *Interpreter) Fault() error {
	if in.fault == nil {
		return nil
	}
	return in.fault
}

// Quirks returns the active quirk configuration.
func (in *Interpreter) Quirks() Quirks {
	return in.quirks
}
