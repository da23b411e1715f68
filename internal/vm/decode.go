package vm

import "github.com/retroenv/retrogolib/arch/cpu/chip8"

// decodes returns whether the opcode matches an entry of the CHIP-8
// instruction set table. Words without a table entry are never executed.
func decodes(opcode uint16) bool {
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return true
		}
	}
	return false
}
