package vm

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address that ROMs are loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits into memory.
	MaxROMSize = MemorySize - ProgramStart

	// FontAddress is the address of the first built-in font glyph.
	FontAddress = 0x050

	// FontGlyphSize is the number of bytes of a single font glyph.
	FontGlyphSize = 5

	addressMask = 0x0FFF
)

// font contains the sprites for the hexadecimal digits 0-F, each 4 pixels wide.
var font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4KB byte store of the machine.
// All addresses are masked to 12 bits, accesses can not go out of range.
type Memory struct {
	data [MemorySize]byte
}

// Read returns the byte at the given address.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&addressMask]
}

// ReadWord returns the big-endian word starting at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

func (m *Memory) write(address uint16, value byte) {
	m.data[address&addressMask] = value
}

// reset clears the memory and places the font into the interpreter area.
func (m *Memory) reset() {
	clear(m.data[:])
	copy(m.data[FontAddress:], font[:])
}

// loadProgram copies the ROM to the program area, the caller has to validate the size.
func (m *Memory) loadProgram(rom []byte) {
	copy(m.data[ProgramStart:], rom)
}

// FontGlyphAddress returns the address of the font sprite of the given hex digit.
func FontGlyphAddress(digit byte) uint16 {
	return FontAddress + uint16(digit&0x0F)*FontGlyphSize
}
