// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Model
//
// The machine consists of 4KB of memory, sixteen 8-bit registers V0-VF, a 16-bit index
// register I, a program counter, a 16 entry call stack, two 60Hz timers and a 64x32
// monochrome display:
//   - 0x000-0x1FF: Interpreter area, holds the built-in hexadecimal font at FontAddress
//   - ProgramStart-0xFFF: Program and data area, ROMs are loaded verbatim at ProgramStart
//
// Register VF doubles as the flag output of arithmetic, shift and draw instructions.
//
// # Execution
//
// The Interpreter executes exactly one instruction per Step call and never blocks.
// The key wait instruction FX0A is modeled as the WaitingForKey state, in which Step
// returns EventIdle until a new key press is observed. Runtime faults move the
// interpreter into the Halted state, every following Step returns the same fault.
//
// Timers are decremented by TickTimers, which the host or the clock driver calls at
// 60Hz independent of the instruction rate.
//
// # Quirks
//
// Behaviors that differ between historical interpreters are selected by Quirks at
// construction time, see the Quirks type for the available switches.
package vm
