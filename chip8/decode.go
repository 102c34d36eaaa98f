package chip8

/// Instruction is a raw 16-bit CHIP-8 opcode word.
///
type Instruction uint16

/// Nibble returns one of the four 4-bit fields, MSB first: nibble 0 is
/// bits 15-12 and nibble 3 is bits 3-0.
///
func (i Instruction) Nibble(n uint) byte {
	return byte(i>>(4*(3-n&3))) & 0xF
}

/// Addr returns the 12-bit address operand (nnn).
///
func (i Instruction) Addr() uint16 {
	return uint16(i) & 0xFFF
}

/// Byte returns the 8-bit immediate operand (kk).
///
func (i Instruction) Byte() byte {
	return byte(i & 0xFF)
}

/// X returns the first register operand.
///
func (i Instruction) X() byte {
	return i.Nibble(1)
}

/// Y returns the second register operand.
///
func (i Instruction) Y() byte {
	return i.Nibble(2)
}

/// N returns the 4-bit immediate operand.
///
func (i Instruction) N() byte {
	return i.Nibble(3)
}

/// Op identifies a decoded operation.
///
type Op int

const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpSYS        // 0nnn
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSE         // 3xkk
	OpSNE        // 4xkk
	OpSEXY       // 5xy0
	OpLD         // 6xkk
	OpADD        // 7xkk
	OpLDXY       // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDXY      // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEXY      // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDXDT      // Fx07
	OpLDXK       // Fx0A
	OpLDDTX      // Fx15
	OpLDSTX      // Fx18
	OpADDIX      // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpSTORE      // Fx55
	OpLOAD       // Fx65
)

var opNames = [...]string{
	OpUnknown: "??",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpSYS:     "SYS",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSE:      "SE",
	OpSNE:     "SNE",
	OpSEXY:    "SE",
	OpLD:      "LD",
	OpADD:     "ADD",
	OpLDXY:    "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDXY:   "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEXY:   "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDXDT:   "LD",
	OpLDXK:    "LD",
	OpLDDTX:   "LD",
	OpLDSTX:   "LD",
	OpADDIX:   "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpSTORE:   "LD",
	OpLOAD:    "LD",
}

/// String returns the mnemonic of the operation.
///
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return opNames[OpUnknown]
	}
	return opNames[op]
}

/// Decode maps an instruction to its operation. The family is picked by
/// nibble 0; the 8xyN family is told apart by nibble 3, and the 0, E and
/// F families by the low byte. Anything else is OpUnknown.
///
func Decode(inst Instruction) Op {
	switch inst.Nibble(0) {
	case 0x0:
		switch inst {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		}
		return OpSYS
	case 0x1:
		return OpJP
	case 0x2:
		return OpCALL
	case 0x3:
		return OpSE
	case 0x4:
		return OpSNE
	case 0x5:
		if inst.N() == 0 {
			return OpSEXY
		}
	case 0x6:
		return OpLD
	case 0x7:
		return OpADD
	case 0x8:
		return decodeALU(inst)
	case 0x9:
		if inst.N() == 0 {
			return OpSNEXY
		}
	case 0xA:
		return OpLDI
	case 0xB:
		return OpJPV0
	case 0xC:
		return OpRND
	case 0xD:
		return OpDRW
	case 0xE:
		switch inst.Byte() {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF:
		return decodeMisc(inst)
	}

	return OpUnknown
}

func decodeALU(inst Instruction) Op {
	switch inst.N() {
	case 0x0:
		return OpLDXY
	case 0x1:
		return OpOR
	case 0x2:
		return OpAND
	case 0x3:
		return OpXOR
	case 0x4:
		return OpADDXY
	case 0x5:
		return OpSUB
	case 0x6:
		return OpSHR
	case 0x7:
		return OpSUBN
	case 0xE:
		return OpSHL
	}

	return OpUnknown
}

func decodeMisc(inst Instruction) Op {
	switch inst.Byte() {
	case 0x07:
		return OpLDXDT
	case 0x0A:
		return OpLDXK
	case 0x15:
		return OpLDDTX
	case 0x18:
		return OpLDSTX
	case 0x1E:
		return OpADDIX
	case 0x29:
		return OpLDF
	case 0x33:
		return OpLDB
	case 0x55:
		return OpSTORE
	case 0x65:
		return OpLOAD
	}

	return OpUnknown
}
