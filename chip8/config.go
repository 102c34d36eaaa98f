package chip8

import "time"

/// Config describes the fixed layout of a CHIP-8 machine. It is passed by
/// value to New and never modified afterwards. The font and ProgramStart
/// must lie inside MemorySize, otherwise loading fails with
/// ErrInvalidLayout.
///
type Config struct {
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize int

	/// ProgramStart is where programs are loaded and execution begins.
	///
	ProgramStart uint16

	/// FontBase is where the 16 hex digit glyphs are written.
	///
	FontBase uint16

	/// StackDepth is the maximum number of nested subroutine calls.
	///
	StackDepth int

	/// TimerPeriod is how often the delay and sound timers count down.
	///
	TimerPeriod time.Duration
}

/// DefaultConfig returns the layout of the original COSMAC VIP interpreter.
///
func DefaultConfig() Config {
	return Config{
		MemorySize:   0x1000,
		ProgramStart: 0x200,
		FontBase:     0x050,
		StackDepth:   16,
		TimerPeriod:  time.Second / 60,
	}
}

/// ProgramCapacity returns the largest program that fits in memory.
///
func (c Config) ProgramCapacity() int {
	return c.MemorySize - int(c.ProgramStart)
}
