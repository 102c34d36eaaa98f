package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrProgramTooLarge    = errors.New("program too large to fit in memory")
	ErrInvalidLayout      = errors.New("font or program start outside of memory")
	ErrStackOverflow      = errors.New("stack overflow")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrFetchOutOfBounds   = errors.New("program counter out of bounds")
	ErrAddressOutOfBounds = errors.New("memory access out of bounds")
)

/// UnknownOpcodeError reports an instruction that does not decode to any
/// known operation. The program counter has already moved past it, so
/// execution can continue.
///
type UnknownOpcodeError struct {
	Address     uint16
	Instruction Instruction
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %04X at %04X", uint16(e.Instruction), e.Address)
}

/// IsRecoverable returns true if err leaves the interpreter able to run
/// the next cycle.
///
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}

	var unknown *UnknownOpcodeError
	return errors.As(err, &unknown)
}
