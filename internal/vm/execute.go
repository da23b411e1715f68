package vm

// instruction is a 16 bit instruction word with accessors for its fields.
type instruction uint16

func (i instruction) family() int  { return int(i >> 12) }
func (i instruction) x() byte      { return byte(i>>8) & 0x0F }
func (i instruction) y() byte      { return byte(i>>4) & 0x0F }
func (i instruction) n() byte      { return byte(i) & 0x0F }
func (i instruction) nn() byte     { return byte(i) }
func (i instruction) nnn() uint16  { return uint16(i) & addressMask }
func (i instruction) word() uint16 { return uint16(i) }

type handler func(in *Interpreter, ins instruction) (Event, error)

// handlers maps the top nibble of an instruction to its execution function.
var handlers = [16]handler{
	0x0: (*Interpreter).execSystem,
	0x1: (*Interpreter).execJump,
	0x2: (*Interpreter).execCall,
	0x3: (*Interpreter).execSkipEqualImmediate,
	0x4: (*Interpreter).execSkipNotEqualImmediate,
	0x5: (*Interpreter).execSkipEqualRegister,
	0x6: (*Interpreter).execLoadImmediate,
	0x7: (*Interpreter).execAddImmediate,
	0x8: (*Interpreter).execALU,
	0x9: (*Interpreter).execSkipNotEqualRegister,
	0xA: (*Interpreter).execLoadIndex,
	0xB: (*Interpreter).execJumpOffset,
	0xC: (*Interpreter).execRandom,
	0xD: (*Interpreter).execDraw,
	0xE: (*Interpreter).execSkipKey,
	0xF: (*Interpreter).execMisc,
}

// execute runs an instruction that was validated against the instruction set
// table, the handlers reject the remaining encodings of their family.
func (in *Interpreter) execute(ins instruction) (Event, error) {
	if !decodes(ins.word()) {
		return EventIdle, ErrInvalidOpcode
	}
	return handlers[ins.family()](in, ins)
}

// execSystem handles 00E0 (clear display) and 00EE (return).
func (in *Interpreter) execSystem(ins instruction) (Event, error) {
	switch ins.word() {
	case 0x00E0:
		in.machine.display.clear()
		return EventRedraw, nil

	case 0x00EE:
		address, err := in.machine.stack.pop()
		if err != nil {
			return EventIdle, err
		}
		in.machine.registers.PC = address
		return EventExecuted, nil

	default:
		return EventIdle, ErrInvalidOpcode
	}
}

// execJump handles 1NNN.
func (in *Interpreter) execJump(ins instruction) (Event, error) {
	in.machine.registers.PC = ins.nnn()
	return EventExecuted, nil
}

// execCall handles 2NNN, the pushed return address is the already advanced PC.
func (in *Interpreter) execCall(ins instruction) (Event, error) {
	regs := &in.machine.registers
	if err := in.machine.stack.push(regs.PC); err != nil {
		return EventIdle, err
	}
	regs.PC = ins.nnn()
	return EventExecuted, nil
}

// execSkipEqualImmediate handles 3XNN.
func (in *Interpreter) execSkipEqualImmediate(ins instruction) (Event, error) {
	regs := &in.machine.registers
	if regs.V[ins.x()] == ins.nn() {
		regs.skip()
	}
	return EventExecuted, nil
}

// execSkipNotEqualImmediate handles 4XNN.
func (in *Interpreter) execSkipNotEqualImmediate(ins instruction) (Event, error) {
	regs := &in.machine.registers
	if regs.V[ins.x()] != ins.nn() {
		regs.skip()
	}
	return EventExecuted, nil
}

// execSkipEqualRegister handles 5XY0.
func (in *Interpreter) execSkipEqualRegister(ins instruction) (Event, error) {
	if ins.n() != 0 {
		return EventIdle, ErrInvalidOpcode
	}
	regs := &in.machine.registers
	if regs.V[ins.x()] == regs.V[ins.y()] {
		regs.skip()
	}
	return EventExecuted, nil
}

// execSkipNotEqualRegister handles 9XY0.
func (in *Interpreter) execSkipNotEqualRegister(ins instruction) (Event, error) {
	if ins.n() != 0 {
		return EventIdle, ErrInvalidOpcode
	}
	regs := &in.machine.registers
	if regs.V[ins.x()] != regs.V[ins.y()] {
		regs.skip()
	}
	return EventExecuted, nil
}

// execLoadImmediate handles 6XNN.
func (in *Interpreter) execLoadImmediate(ins instruction) (Event, error) {
	in.machine.registers.V[ins.x()] = ins.nn()
	return EventExecuted, nil
}

// execAddImmediate handles 7XNN, the addition wraps and does not touch VF.
func (in *Interpreter) execAddImmediate(ins instruction) (Event, error) {
	in.machine.registers.V[ins.x()] += ins.nn()
	return EventExecuted, nil
}

// execALU handles the 8XYN register operations. The flag is always written
// after the result so that VF holds the flag if it is also the destination.
func (in *Interpreter) execALU(ins instruction) (Event, error) {
	v := &in.machine.registers.V
	x, y := ins.x(), ins.y()
	vx, vy := v[x], v[y]

	switch ins.n() {
	case 0x0:
		v[x] = vy

	case 0x1:
		v[x] = vx | vy
		in.resetFlagOnLogic()

	case 0x2:
		v[x] = vx & vy
		in.resetFlagOnLogic()

	case 0x3:
		v[x] = vx ^ vy
		in.resetFlagOnLogic()

	case 0x4:
		sum := uint16(vx) + uint16(vy)
		v[x] = byte(sum)
		v[VF] = byte(sum >> 8)

	case 0x5:
		v[x] = vx - vy
		v[VF] = boolToByte(vx >= vy)

	case 0x6:
		src := in.shiftSource(vx, vy)
		v[x] = src >> 1
		v[VF] = src & 0x01

	case 0x7:
		v[x] = vy - vx
		v[VF] = boolToByte(vy >= vx)

	case 0xE:
		src := in.shiftSource(vx, vy)
		v[x] = src << 1
		v[VF] = src >> 7

	default:
		return EventIdle, ErrInvalidOpcode
	}

	return EventExecuted, nil
}

func (in *Interpreter) resetFlagOnLogic() {
	if in.quirks.ResetFlagOnLogic {
		in.machine.registers.V[VF] = 0
	}
}

func (in *Interpreter) shiftSource(vx, vy byte) byte {
	if in.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

// execLoadIndex handles ANNN.
func (in *Interpreter) execLoadIndex(ins instruction) (Event, error) {
	in.machine.registers.I = ins.nnn()
	return EventExecuted, nil
}

// execJumpOffset handles BNNN.
func (in *Interpreter) execJumpOffset(ins instruction) (Event, error) {
	regs := &in.machine.registers
	offset := regs.V[0]
	if in.quirks.JumpUsesVX {
		offset = regs.V[ins.x()]
	}
	regs.PC = ins.nnn() + uint16(offset)
	return EventExecuted, nil
}

// execRandom handles CXNN.
func (in *Interpreter) execRandom(ins instruction) (Event, error) {
	in.machine.registers.V[ins.x()] = byte(in.rand.Uint32()) & ins.nn()
	return EventExecuted, nil
}

// execDraw handles DXYN by XOR drawing N sprite rows read from I.
func (in *Interpreter) execDraw(ins instruction) (Event, error) {
	regs := &in.machine.registers

	var buf [15]byte
	sprite := buf[:ins.n()]
	for row := range sprite {
		sprite[row] = in.machine.memory.Read(regs.I + uint16(row))
	}

	collision := in.machine.display.drawSprite(regs.V[ins.x()], regs.V[ins.y()], sprite, in.quirks.DrawWraps)
	regs.V[VF] = boolToByte(collision)
	return EventRedraw, nil
}

// execSkipKey handles EX9E and EXA1.
func (in *Interpreter) execSkipKey(ins instruction) (Event, error) {
	regs := &in.machine.registers
	pressed := in.keys.Pressed(regs.V[ins.x()])

	switch ins.nn() {
	case 0x9E:
		if pressed {
			regs.skip()
		}
	case 0xA1:
		if !pressed {
			regs.skip()
		}
	default:
		return EventIdle, ErrInvalidOpcode
	}
	return EventExecuted, nil
}

// execMisc handles the FXNN timer, key wait, index and memory transfer instructions.
func (in *Interpreter) execMisc(ins instruction) (Event, error) {
	regs := &in.machine.registers
	mem := &in.machine.memory
	x := ins.x()

	switch ins.nn() {
	case 0x07:
		regs.V[x] = regs.DT

	case 0x0A:
		in.wait = newKeyWait(x, &in.keys)
		in.state = WaitingForKey

	case 0x15:
		regs.DT = regs.V[x]

	case 0x18:
		regs.ST = regs.V[x]

	case 0x1E:
		regs.I += uint16(regs.V[x])

	case 0x29:
		regs.I = FontGlyphAddress(regs.V[x])

	case 0x33:
		value := regs.V[x]
		mem.write(regs.I, value/100)
		mem.write(regs.I+1, value/10%10)
		mem.write(regs.I+2, value%10)

	case 0x55:
		for r := range uint16(x) + 1 {
			mem.write(regs.I+r, regs.V[r])
		}
		in.incrementIndex(x)

	case 0x65:
		for r := range uint16(x) + 1 {
			regs.V[r] = mem.Read(regs.I + r)
		}
		in.incrementIndex(x)

	default:
		return EventIdle, ErrInvalidOpcode
	}

	return EventExecuted, nil
}

func (in *Interpreter) incrementIndex(x byte) {
	if in.quirks.IncrementIndex {
		in.machine.registers.I += uint16(x) + 1
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
