package vm

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

const snapshotVersion = 1

// Snapshot archive entry names.
const (
	snapshotStateFile   = "state.json"
	snapshotMemoryFile  = "memory.bin"
	snapshotDisplayFile = "display.bin"
	snapshotROMFile     = "rom.bin"
)

// faultNames maps the runtime sentinel errors to their snapshot names.
var faultNames = map[string]error{
	"stack_overflow":  ErrStackOverflow,
	"stack_underflow": ErrStackUnderflow,
	"invalid_opcode":  ErrInvalidOpcode,
}

// snapshotState is the JSON serializable control state of the interpreter.
type snapshotState struct {
	Version int `json:"version"`

	V  [RegisterCount]byte `json:"v"`
	I  uint16              `json:"i"`
	PC uint16              `json:"pc"`
	DT byte                `json:"dt"`
	ST byte                `json:"st"`

	Stack []uint16 `json:"stack"`

	State        State          `json:"state"`
	WaitRegister byte           `json:"wait_register"`
	WaitHeld     [KeyCount]bool `json:"wait_held"`

	Fault       string `json:"fault,omitempty"`
	FaultPC     uint16 `json:"fault_pc,omitempty"`
	FaultOpcode uint16 `json:"fault_opcode,omitempty"`

	Quirks Quirks `json:"quirks"`
}

// Snapshot serializes the complete machine state into a zip archive.
// The keypad is not part of the snapshot as it is owned by the host.
func (in *Interpreter) Snapshot() ([]byte, error) {
	regs := in.machine.registers
	state := snapshotState{
		Version:      snapshotVersion,
		V:            regs.V,
		I:            regs.I,
		PC:           regs.PC,
		DT:           regs.DT,
		ST:           regs.ST,
		Stack:        slices.Clone(in.machine.stack.entries[:in.machine.stack.depth]),
		State:        in.state,
		WaitRegister: in.wait.register,
		WaitHeld:     in.wait.held,
		Quirks:       in.quirks,
	}
	if in.fault != nil {
		for name, err := range faultNames {
			if in.fault.Err == err {
				state.Fault = name
			}
		}
		state.FaultPC = in.fault.PC
		state.FaultOpcode = in.fault.Opcode
	}

	stateData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling state: %w", err)
	}

	display := make([]byte, 0, DisplayWidth*DisplayHeight)
	for y := range in.machine.display.pixels {
		for x := range in.machine.display.pixels[y] {
			display = append(display, boolToByte(in.machine.display.pixels[y][x]))
		}
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	entries := []struct {
		name string
		data []byte
	}{
		{snapshotStateFile, stateData},
		{snapshotMemoryFile, in.machine.memory.data[:]},
		{snapshotDisplayFile, display},
		{snapshotROMFile, in.rom},
	}
	for _, entry := range entries {
		if err := writeZipEntry(zw, entry.name, entry.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing snapshot archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Restore replaces the machine state with a snapshot created by Snapshot.
// The interpreter is only modified if the complete snapshot is valid.
func (in *Interpreter) Restore(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	files := make(map[string][]byte, len(zr.File))
	for _, file := range zr.File {
		content, err := readZipEntry(file)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
		}
		files[file.Name] = content
	}

	var state snapshotState
	stateData, ok := files[snapshotStateFile]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrInvalidSnapshot, snapshotStateFile)
	}
	if err := json.Unmarshal(stateData, &state); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	var restored machine
	var wait keyWait
	fault, err := validateSnapshot(&state, files)
	if err != nil {
		return err
	}

	copy(restored.memory.data[:], files[snapshotMemoryFile])
	display := files[snapshotDisplayFile]
	for y := range restored.display.pixels {
		for x := range restored.display.pixels[y] {
			restored.display.pixels[y][x] = display[y*DisplayWidth+x] != 0
		}
	}
	restored.registers = Registers{V: state.V, I: state.I, PC: state.PC, DT: state.DT, ST: state.ST}
	copy(restored.stack.entries[:], state.Stack)
	restored.stack.depth = len(state.Stack)
	wait.register = state.WaitRegister
	wait.held = state.WaitHeld

	in.machine = restored
	in.rom = slices.Clone(files[snapshotROMFile])
	in.quirks = state.Quirks
	in.state = state.State
	in.wait = wait
	in.fault = fault
	return nil
}

// validateSnapshot checks the decoded state and archive entries and returns the
// fault to restore for halted snapshots.
func validateSnapshot(state *snapshotState, files map[string][]byte) (*Fault, error) {
	if state.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, state.Version)
	}
	if len(files[snapshotMemoryFile]) != MemorySize {
		return nil, fmt.Errorf("%w: memory size %d", ErrInvalidSnapshot, len(files[snapshotMemoryFile]))
	}
	if len(files[snapshotDisplayFile]) != DisplayWidth*DisplayHeight {
		return nil, fmt.Errorf("%w: display size %d", ErrInvalidSnapshot, len(files[snapshotDisplayFile]))
	}
	if len(files[snapshotROMFile]) > MaxROMSize {
		return nil, fmt.Errorf("%w: rom size %d", ErrInvalidSnapshot, len(files[snapshotROMFile]))
	}
	if len(state.Stack) > StackDepth {
		return nil, fmt.Errorf("%w: stack depth %d", ErrInvalidSnapshot, len(state.Stack))
	}
	if state.WaitRegister >= RegisterCount {
		return nil, fmt.Errorf("%w: wait register %d", ErrInvalidSnapshot, state.WaitRegister)
	}

	switch state.State {
	case Running, WaitingForKey:
		return nil, nil
	case Halted:
		err, ok := faultNames[state.Fault]
		if !ok {
			return nil, fmt.Errorf("%w: unknown fault %q", ErrInvalidSnapshot, state.Fault)
		}
		return &Fault{Err: err, PC: state.FaultPC, Opcode: state.FaultOpcode}, nil
	default:
		return nil, fmt.Errorf("%w: unknown state %d", ErrInvalidSnapshot, state.State)
	}
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating snapshot entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing snapshot entry %s: %w", name, err)
	}
	return nil
}

func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening entry %s: %w", file.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, MemorySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading entry %s: %w", file.Name, err)
	}
	return data, nil
}
