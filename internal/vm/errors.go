package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrROMTooLarge is returned by Load for ROMs that do not fit into the program area.
	ErrROMTooLarge = errors.New("rom too large")
	// ErrStackOverflow is the fault of a subroutine call with a full call stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is the fault of a subroutine return with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidOpcode is the fault of an instruction word that does not decode.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInvalidSnapshot is returned by Restore for unusable save states.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Fault is a fatal runtime error that halted the interpreter.
type Fault struct {
	Err    error  // one of the runtime sentinel errors
	PC     uint16 // address of the faulting instruction
	Opcode uint16 // faulting instruction word
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: opcode %04X at %03X", f.Err, f.Opcode, f.PC)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
