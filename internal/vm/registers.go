package vm

// RegisterCount is the number of general purpose V registers.
const RegisterCount = 16

// VF is the index of the flag register.
const VF = 0xF

// Registers contains the register file of the machine.
type Registers struct {
	V  [RegisterCount]byte // general purpose registers, VF is also the flag output
	I  uint16              // index register
	PC uint16              // program counter, 12 bits are used for addressing
	DT byte                // delay timer
	ST byte                // sound timer
}

func (r *Registers) reset() {
	*r = Registers{PC: ProgramStart}
}

// skip advances the program counter past the next instruction.
func (r *Registers) skip() {
	r.PC += 2
}
