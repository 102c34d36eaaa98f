package chip8

import "fmt"

/// Font holds the 4x5 sprites for the hex digits 0-F.
///
var Font = [80]byte{
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

/// GlyphSize is the number of bytes (rows) in each font sprite.
///
const GlyphSize = 5

/// Memory is the flat, byte addressable store of the CHIP-8. It holds
/// the font, the loaded program and any working data addressed via I.
///
type Memory struct {
	cells []byte

	programStart uint16
	fontBase     uint16
}

/// NewMemory allocates zeroed memory laid out according to cfg.
///
func NewMemory(cfg Config) *Memory {
	return &Memory{
		cells:        make([]byte, cfg.MemorySize),
		programStart: cfg.ProgramStart,
		fontBase:     cfg.FontBase,
	}
}

/// Size returns the number of addressable bytes.
///
func (m *Memory) Size() int {
	return len(m.cells)
}

/// Load copies a program to the program start address and writes the
/// font. Loading over an already loaded program without calling Clear
/// first leaves the tail of the old program in place.
///
func (m *Memory) Load(program []byte) error {
	if int(m.programStart) > len(m.cells) || int(m.fontBase)+len(Font) > len(m.cells) {
		return fmt.Errorf("%w: program at %04X, font at %04X, %d bytes of memory",
			ErrInvalidLayout, m.programStart, m.fontBase, len(m.cells))
	}

	capacity := len(m.cells) - int(m.programStart)
	if len(program) > capacity {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrProgramTooLarge, len(program), capacity)
	}

	copy(m.cells[m.programStart:], program)
	copy(m.cells[m.fontBase:], Font[:])

	return nil
}

/// Clear zeroes all of memory.
///
func (m *Memory) Clear() {
	for i := range m.cells {
		m.cells[i] = 0
	}
}

/// Read returns the byte at addr.
///
func (m *Memory) Read(addr uint16) (byte, error) {
	if int(addr) >= len(m.cells) {
		return 0, fmt.Errorf("%w: read %04X", ErrAddressOutOfBounds, addr)
	}

	return m.cells[addr], nil
}

/// Write stores b at addr.
///
func (m *Memory) Write(addr uint16, b byte) error {
	if int(addr) >= len(m.cells) {
		return fmt.Errorf("%w: write %04X", ErrAddressOutOfBounds, addr)
	}

	m.cells[addr] = b
	return nil
}

/// Slice returns the n bytes starting at addr. The slice aliases memory.
///
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	end := int(addr) + n
	if end > len(m.cells) {
		return nil, fmt.Errorf("%w: %d bytes at %04X", ErrAddressOutOfBounds, n, addr)
	}

	return m.cells[addr:end], nil
}

/// Word returns the big-endian 16-bit value at addr.
///
func (m *Memory) Word(addr uint16) (uint16, error) {
	b, err := m.Slice(addr, 2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}

/// Glyph returns the address of the font sprite for digit d.
///
func (m *Memory) Glyph(d byte) uint16 {
	return m.fontBase + uint16(d&0xF)*GlyphSize
}

func (m *Memory) snapshot() []byte {
	return append([]byte(nil), m.cells...)
}

func (m *Memory) restore(image []byte) {
	copy(m.cells, image)
}
