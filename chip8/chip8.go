package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// cfg is the machine layout the VM was created with.
	///
	cfg Config

	/// rom is the pristine memory image after the last program load. It
	/// is what Reset restores Memory to.
	///
	rom []byte

	/// mem holds the font, the program and working data.
	///
	mem *Memory

	/// video is the 64x32 display.
	///
	video Display

	/// pc is the program counter. All programs begin at ProgramStart.
	///
	pc uint16

	/// i is the address register.
	///
	i uint16

	/// v are the 16 virtual registers.
	///
	v [16]byte

	/// stack of return addresses for CALL/RET.
	///
	stack *Stack

	/// dt and st are the delay and sound timers.
	///
	dt *Timer
	st *Timer

	/// keys hold the current state for the 16-key pad.
	///
	keys [16]bool

	/// wait is the register waiting for a key press, or -1.
	///
	wait int

	/// cycles is how many instructions have been executed.
	///
	cycles int64

	logger *log.Logger
	now    func() time.Time
	rng    *rand.Rand
}

/// Option customizes a new virtual machine.
///
type Option func(*CHIP_8)

/// WithLogger sets the logger used for diagnostics.
///
func WithLogger(logger *log.Logger) Option {
	return func(vm *CHIP_8) {
		vm.logger = logger
	}
}

/// WithClock sets the time source used by the timers.
///
func WithClock(now func() time.Time) Option {
	return func(vm *CHIP_8) {
		vm.now = now
	}
}

/// WithRandom sets the random source used by RND.
///
func WithRandom(rng *rand.Rand) Option {
	return func(vm *CHIP_8) {
		vm.rng = rng
	}
}

/// New creates a virtual machine with cleared memory and registers.
///
func New(cfg Config, options ...Option) *CHIP_8 {
	vm := &CHIP_8{
		cfg:   cfg,
		mem:   NewMemory(cfg),
		stack: NewStack(cfg.StackDepth),
		dt:    NewTimer(cfg.TimerPeriod),
		st:    NewTimer(cfg.TimerPeriod),
		now:   time.Now,
	}

	for _, option := range options {
		option(vm)
	}

	if vm.logger == nil {
		vm.logger = log.NewWithConfig(log.DefaultConfig())
	}
	if vm.rng == nil {
		vm.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	vm.rom = vm.mem.snapshot()
	vm.Reset()

	return vm
}

/// LoadProgram copies a program into memory at ProgramStart along with
/// the font and resets the machine. The program is loaded into fresh
/// memory, so a VM can be reused for another program and a failed load
/// leaves the machine untouched.
///
func (vm *CHIP_8) LoadProgram(program []byte) error {
	mem := NewMemory(vm.cfg)

	if err := mem.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	vm.rom = mem.snapshot()
	vm.Reset()

	vm.logger.Debug("Program loaded",
		log.Int("size", len(program)),
		log.Hex("start", vm.cfg.ProgramStart))

	return nil
}

/// Reset the CHIP-8 virtual machine to the state right after the last
/// program load.
///
func (vm *CHIP_8) Reset() {
	vm.mem.restore(vm.rom)
	vm.video.Clear()

	vm.pc = vm.cfg.ProgramStart
	vm.i = 0
	vm.v = [16]byte{}
	vm.stack.Reset()

	vm.dt.Reset()
	vm.st.Reset()

	vm.keys = [16]bool{}
	vm.wait = -1
	vm.cycles = 0
}

/// Run updates the timers and then executes a single instruction. While
/// waiting for a key press no instruction is executed.
///
/// An *UnknownOpcodeError is returned for words that do not decode; the
/// instruction is skipped and Run may be called again. Any other error
/// means the machine state is no longer usable.
///
func (vm *CHIP_8) Run() error {
	now := vm.now()

	vm.dt.Update(now)
	vm.st.Update(now)

	if vm.wait >= 0 {
		return nil
	}

	addr := vm.pc

	inst, err := vm.fetch()
	if err != nil {
		return err
	}

	op := Decode(inst)
	if op == OpUnknown {
		vm.cycles++
		vm.logger.Warn("Unknown opcode",
			log.Hex("address", addr),
			log.Hex("opcode", uint16(inst)))
		return &UnknownOpcodeError{Address: addr, Instruction: inst}
	}

	vm.logger.Debug("Execute",
		log.Hex("address", addr),
		log.Hex("opcode", uint16(inst)),
		log.String("op", op.String()))

	if err := vm.execute(op, inst); err != nil {
		return fmt.Errorf("executing %04X at %04X: %w", uint16(inst), addr, err)
	}

	vm.cycles++
	return nil
}

/// Frame returns a copy of the video memory for presentation.
///
func (vm *CHIP_8) Frame() Frame {
	return vm.video.Frame()
}

/// Registers returns a snapshot of the register file.
///
func (vm *CHIP_8) Registers() Registers {
	return Registers{
		V:  vm.v,
		I:  vm.i,
		PC: vm.pc,
		SP: vm.stack.Len(),
	}
}

/// Memory returns the machine memory.
///
func (vm *CHIP_8) Memory() *Memory {
	return vm.mem
}

/// Config returns the layout the machine was created with.
///
func (vm *CHIP_8) Config() Config {
	return vm.cfg
}

/// DelayTimer returns the delay timer count.
///
func (vm *CHIP_8) DelayTimer() byte {
	return vm.dt.Value()
}

/// SoundTimer returns the sound timer count.
///
func (vm *CHIP_8) SoundTimer() byte {
	return vm.st.Value()
}

/// Sound returns true while the buzzer should be on.
///
func (vm *CHIP_8) Sound() bool {
	return vm.st.Active()
}

/// Cycles returns how many instructions have been executed since reset.
///
func (vm *CHIP_8) Cycles() int64 {
	return vm.cycles
}

/// Waiting returns true if the VM is blocked waiting for a key press.
///
func (vm *CHIP_8) Waiting() bool {
	return vm.wait >= 0
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key uint) {
	if key < 16 {
		vm.keys[key] = true

		// if waiting for a key, set it now
		if vm.wait >= 0 {
			vm.v[vm.wait] = byte(key)

			// clear wait flag
			vm.wait = -1
		}
	}
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key uint) {
	if key < 16 {
		vm.keys[key] = false
	}
}

/// fetch the next 16-bit instruction to execute.
///
func (vm *CHIP_8) fetch() (Instruction, error) {
	if int(vm.pc) >= vm.mem.Size()-2 {
		return 0, fmt.Errorf("%w: %04X", ErrFetchOutOfBounds, vm.pc)
	}

	w, err := vm.mem.Word(vm.pc)
	if err != nil {
		return 0, err
	}

	// advance the program counter
	vm.pc += 2

	return Instruction(w), nil
}
