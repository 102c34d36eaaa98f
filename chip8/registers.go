package chip8

import "fmt"

/// Registers is a snapshot of the CHIP-8 register file.
///
type Registers struct {
	/// V are the 16 general registers. V[0xF] doubles as the flag
	/// register written by arithmetic, shift and draw instructions.
	///
	V [16]byte

	/// I is the address register.
	///
	I uint16

	/// PC is the program counter.
	///
	PC uint16

	/// SP is the number of return addresses on the stack.
	///
	SP int
}

/// Flags returns VF, the carry/borrow/collision output of the last
/// instruction that wrote it.
///
func (r Registers) Flags() byte {
	return r.V[0xF]
}

/// String formats the registers on a single line.
///
func (r Registers) String() string {
	return fmt.Sprintf("PC=%04X I=%04X SP=%d V=% X", r.PC, r.I, r.SP, r.V[:])
}

/// Stack holds subroutine return addresses.
///
type Stack struct {
	addrs []uint16
	depth int
}

/// NewStack returns an empty stack holding at most depth addresses.
///
func NewStack(depth int) *Stack {
	return &Stack{
		addrs: make([]uint16, 0, depth),
		depth: depth,
	}
}

/// Push a return address.
///
func (s *Stack) Push(addr uint16) error {
	if len(s.addrs) >= s.depth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, s.depth)
	}

	s.addrs = append(s.addrs, addr)
	return nil
}

/// Pop the most recent return address.
///
func (s *Stack) Pop() (uint16, error) {
	n := len(s.addrs)
	if n == 0 {
		return 0, ErrStackUnderflow
	}

	addr := s.addrs[n-1]
	s.addrs = s.addrs[:n-1]

	return addr, nil
}

/// Len returns the number of addresses on the stack.
///
func (s *Stack) Len() int {
	return len(s.addrs)
}

/// Reset empties the stack.
///
func (s *Stack) Reset() {
	s.addrs = s.addrs[:0]
}
