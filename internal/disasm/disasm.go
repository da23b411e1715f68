// Package disasm converts CHIP-8 instruction words to assembly text.
// Instruction names are resolved using the retrogolib CHIP-8 opcode table,
// the parameters are formatted from the opcode fields.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Decode returns the instruction matching the opcode or false if the word
// is not a valid instruction.
func Decode(opcode uint16) (*chip8.Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Format returns the assembly text of an instruction word. Words that do not
// decode are returned as data word directive.
func Format(opcode uint16) string {
	ins, ok := Decode(opcode)
	if !ok {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	if params := formatParams(opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// Write writes a listing of the program to the writer, one instruction per line
// prefixed with the address and the instruction bytes. A trailing odd byte is
// written as data byte.
func Write(w io.Writer, rom []byte, base uint16) error {
	for offset := 0; offset < len(rom); offset += opcodeSize {
		address := base + uint16(offset)

		var line string
		if offset+1 >= len(rom) {
			line = fmt.Sprintf("$%03X  %02X     .byte $%02X\n", address, rom[offset], rom[offset])
		} else {
			opcode := uint16(rom[offset])<<8 | uint16(rom[offset+1])
			line = fmt.Sprintf("$%03X  %02X %02X  %s\n", address, rom[offset], rom[offset+1], Format(opcode))
		}

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}
	return nil
}

// formatParams formats the instruction parameters based on the opcode pattern.
func formatParams(opcode uint16) string {
	x := extractRegisterX(opcode)
	y := extractRegisterY(opcode)

	switch opcode & 0xF000 {
	case 0x0000:
		return "" // cls, ret
	case 0x1000, 0x2000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8000:
		return formatALUParams(opcode, x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, opcode&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", x)
	default:
		return formatMiscParams(opcode, x)
	}
}

// formatALUParams formats the register operations, shifts only name VX.
func formatALUParams(opcode, x, y uint16) string {
	switch opcode & 0x000F {
	case 0x6, 0xE:
		return fmt.Sprintf("V%X", x)
	default:
		return fmt.Sprintf("V%X, V%X", x, y)
	}
}

// formatMiscParams formats the FXNN instructions.
func formatMiscParams(opcode, x uint16) string {
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
