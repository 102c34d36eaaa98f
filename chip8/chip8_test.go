package chip8

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testClock is a manually advanced time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func assemble(words ...uint16) []byte {
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	return program
}

func newTestVM(t *testing.T, words ...uint16) (*CHIP_8, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Unix(0, 0)}
	vm := New(DefaultConfig(),
		WithLogger(log.NewTestLogger(t)),
		WithClock(clock.Now),
		WithRandom(rand.New(rand.NewSource(1))))

	assert.NoError(t, vm.LoadProgram(assemble(words...)))
	return vm, clock
}

func runN(t *testing.T, vm *CHIP_8, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		assert.NoError(t, vm.Run())
	}
}

func TestLoadX(t *testing.T) {
	for x := uint16(0); x < 16; x++ {
		for kk := uint16(0); kk < 256; kk++ {
			vm, _ := newTestVM(t, 0x6000|x<<8|kk)
			runN(t, vm, 1)
			assert.Equal(t, byte(kk), vm.Registers().V[x])
		}
	}
}

func TestAddX(t *testing.T) {
	vm, _ := newTestVM(t, 0x61FF, 0x6F07, 0x7102)
	runN(t, vm, 3)

	regs := vm.Registers()
	assert.Equal(t, byte(0x01), regs.V[1])
	assert.Equal(t, byte(0x07), regs.Flags())
}

func TestALU(t *testing.T) {
	tests := []struct {
		name  string
		op    uint16
		vx    byte
		vy    byte
		want  byte
		flags byte
	}{
		{"ld", 0x8120, 0x12, 0x34, 0x34, 0xAA},
		{"or", 0x8121, 0xF0, 0x0F, 0xFF, 0xAA},
		{"and", 0x8122, 0xF3, 0x3F, 0x33, 0xAA},
		{"xor", 0x8123, 0xFF, 0x0F, 0xF0, 0xAA},
		{"add carry", 0x8124, 0xFF, 0x01, 0x00, 1},
		{"add no carry", 0x8124, 0x01, 0x01, 0x02, 0},
		{"sub no borrow", 0x8125, 0x05, 0x03, 0x02, 1},
		{"sub equal", 0x8125, 0x05, 0x05, 0x00, 1},
		{"sub borrow", 0x8125, 0x03, 0x05, 0xFE, 0},
		{"shr odd", 0x8126, 0x03, 0x00, 0x01, 1},
		{"shr even", 0x8126, 0x82, 0x00, 0x41, 0},
		{"subn no borrow", 0x8127, 0x03, 0x05, 0x02, 1},
		{"subn borrow", 0x8127, 0x05, 0x03, 0xFE, 0},
		{"shl msb", 0x812E, 0x81, 0x00, 0x02, 1},
		{"shl no msb", 0x812E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, _ := newTestVM(t,
				0x6100|uint16(tt.vx),
				0x6200|uint16(tt.vy),
				0x6FAA,
				tt.op)
			runN(t, vm, 4)

			regs := vm.Registers()
			assert.Equal(t, tt.want, regs.V[1])
			assert.Equal(t, tt.flags, regs.Flags())
			assert.Equal(t, tt.vy, regs.V[2])
		})
	}
}

func TestALUFlagRegisterOperand(t *testing.T) {
	// VF as the destination: the flag is written last and wins
	vm, _ := newTestVM(t, 0x6FFF, 0x6101, 0x8F14)
	runN(t, vm, 3)
	assert.Equal(t, byte(1), vm.Registers().Flags())

	// VF as the source operand is read before the flag is written
	vm, _ = newTestVM(t, 0x6102, 0x6F01, 0x81F5)
	runN(t, vm, 3)
	regs := vm.Registers()
	assert.Equal(t, byte(0x01), regs.V[1])
	assert.Equal(t, byte(1), regs.Flags())
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		op   uint16
		skip bool
	}{
		{"se taken", 0x3105, true},
		{"se not taken", 0x3106, false},
		{"sne taken", 0x4106, true},
		{"sne not taken", 0x4105, false},
		{"se xy taken", 0x5120, true},
		{"se xy not taken", 0x5130, false},
		{"sne xy taken", 0x9130, true},
		{"sne xy not taken", 0x9120, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, _ := newTestVM(t, 0x6105, 0x6205, 0x6306, tt.op)
			runN(t, vm, 4)

			want := uint16(0x208)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, vm.Registers().PC)
		})
	}
}

func TestJump(t *testing.T) {
	vm, _ := newTestVM(t, 0x1ABC)
	runN(t, vm, 1)
	assert.Equal(t, uint16(0xABC), vm.Registers().PC)

	vm, _ = newTestVM(t, 0x6010, 0xB300)
	runN(t, vm, 2)
	assert.Equal(t, uint16(0x310), vm.Registers().PC)
}

func TestCallReturn(t *testing.T) {
	// 200: CALL 206
	// 202: LD V1, 1
	// 204: JP 204
	// 206: RET
	vm, _ := newTestVM(t, 0x2206, 0x6101, 0x1204, 0x00EE)

	runN(t, vm, 1)
	regs := vm.Registers()
	assert.Equal(t, uint16(0x206), regs.PC)
	assert.Equal(t, 1, regs.SP)

	runN(t, vm, 1)
	regs = vm.Registers()
	assert.Equal(t, uint16(0x202), regs.PC)
	assert.Equal(t, 0, regs.SP)
}

func TestStackOverflow(t *testing.T) {
	// 200: CALL 200
	vm, _ := newTestVM(t, 0x2200)
	runN(t, vm, 16)

	err := vm.Run()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.False(t, IsRecoverable(err))
}

func TestStackUnderflow(t *testing.T) {
	vm, _ := newTestVM(t, 0x00EE)

	err := vm.Run()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.False(t, IsRecoverable(err))
}

func TestFetchOutOfBounds(t *testing.T) {
	vm, _ := newTestVM(t, 0x1FFE)
	runN(t, vm, 1)

	err := vm.Run()
	assert.True(t, errors.Is(err, ErrFetchOutOfBounds))

	vm, _ = newTestVM(t, 0x1FFC)
	runN(t, vm, 1)
	assert.NoError(t, vm.Run())
}

func TestUnknownOpcode(t *testing.T) {
	vm, _ := newTestVM(t, 0x5121, 0x6142)

	err := vm.Run()
	assert.Error(t, err)
	assert.True(t, IsRecoverable(err))

	var unknown *UnknownOpcodeError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, uint16(0x200), unknown.Address)
	assert.Equal(t, Instruction(0x5121), unknown.Instruction)
	assert.Equal(t, "unknown opcode 5121 at 0200", err.Error())

	// execution continues with the next instruction
	runN(t, vm, 1)
	assert.Equal(t, byte(0x42), vm.Registers().V[1])
}

func TestSys(t *testing.T) {
	vm, _ := newTestVM(t, 0x0123)
	runN(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.Registers().PC)
}

func TestLoadI(t *testing.T) {
	vm, _ := newTestVM(t, 0xA123, 0x6005, 0xF01E)
	runN(t, vm, 3)
	assert.Equal(t, uint16(0x128), vm.Registers().I)
}

func TestDraw(t *testing.T) {
	// LD V0, 0; LD F, V0; DRW V0, V0, 5; CLS; DRW V0, V0, 5; DRW V0, V0, 5
	vm, _ := newTestVM(t, 0x6000, 0xF029, 0xD005, 0x00E0, 0xD005, 0xD005)

	runN(t, vm, 3)
	frame := vm.Frame()
	assert.True(t, frame.Pixel(0, 0))
	assert.True(t, frame.Pixel(3, 0))
	assert.False(t, frame.Pixel(4, 0))
	assert.False(t, frame.Pixel(1, 1))
	assert.Equal(t, 14, frame.Lit())
	assert.Equal(t, byte(0), vm.Registers().Flags())

	runN(t, vm, 1)
	frame = vm.Frame()
	assert.Equal(t, 0, frame.Lit())

	runN(t, vm, 2)
	frame = vm.Frame()
	assert.Equal(t, 0, frame.Lit())
	assert.Equal(t, byte(1), vm.Registers().Flags())
}

func TestDrawOutOfBounds(t *testing.T) {
	vm, _ := newTestVM(t, 0xAFFE, 0xD00F)
	runN(t, vm, 1)

	err := vm.Run()
	assert.True(t, errors.Is(err, ErrAddressOutOfBounds))
}

func TestBCD(t *testing.T) {
	vm, _ := newTestVM(t, 0x60FE, 0xA300, 0xF033)
	runN(t, vm, 3)

	digits, err := vm.Memory().Slice(0x300, 3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{2, 5, 4}, digits)
}

func TestStoreLoadRegisters(t *testing.T) {
	vm, _ := newTestVM(t,
		0x6011, 0x6122, 0x6233,
		0xA300, 0xF255,
		0x6000, 0x6100, 0x6200,
		0xF165)
	runN(t, vm, 9)

	mem, err := vm.Memory().Slice(0x300, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x00}, mem)

	regs := vm.Registers()
	assert.Equal(t, byte(0x11), regs.V[0])
	assert.Equal(t, byte(0x22), regs.V[1])
	assert.Equal(t, byte(0x00), regs.V[2])
	assert.Equal(t, uint16(0x300), regs.I)
}

func TestRandom(t *testing.T) {
	vm, _ := newTestVM(t, 0xC10F, 0xC200)
	runN(t, vm, 2)

	regs := vm.Registers()
	assert.Equal(t, byte(0), regs.V[1]&0xF0)
	assert.Equal(t, byte(0), regs.V[2])
}

func TestKeys(t *testing.T) {
	vm, _ := newTestVM(t, 0x6107, 0xE19E, 0x1FFF, 0xE1A1)

	vm.PressKey(7)
	runN(t, vm, 2)
	assert.Equal(t, uint16(0x206), vm.Registers().PC)

	vm.ReleaseKey(7)
	runN(t, vm, 1)
	assert.Equal(t, uint16(0x20A), vm.Registers().PC)
}

func TestWaitKey(t *testing.T) {
	vm, _ := newTestVM(t, 0xF30A, 0x6101)

	runN(t, vm, 1)
	assert.True(t, vm.Waiting())

	// blocked: nothing executes
	runN(t, vm, 3)
	assert.Equal(t, uint16(0x202), vm.Registers().PC)
	assert.Equal(t, int64(1), vm.Cycles())

	vm.PressKey(0xC)
	assert.False(t, vm.Waiting())
	assert.Equal(t, byte(0xC), vm.Registers().V[3])

	runN(t, vm, 1)
	assert.Equal(t, byte(0x01), vm.Registers().V[1])
}

func TestTimers(t *testing.T) {
	// LD V0, 3; LD DT, V0; LD ST, V0; LD V1, DT; JP 208
	vm, clock := newTestVM(t, 0x6003, 0xF015, 0xF018, 0xF107, 0x1208)
	period := DefaultConfig().TimerPeriod

	runN(t, vm, 3)
	assert.Equal(t, byte(3), vm.DelayTimer())
	assert.Equal(t, byte(3), vm.SoundTimer())
	assert.True(t, vm.Sound())

	// less than a period: no decrement
	runN(t, vm, 1)
	assert.Equal(t, byte(3), vm.Registers().V[1])

	for i := 0; i < 5; i++ {
		clock.Advance(period + time.Millisecond)
		runN(t, vm, 1)
	}
	assert.Equal(t, byte(0), vm.DelayTimer())
	assert.Equal(t, byte(0), vm.SoundTimer())
	assert.False(t, vm.Sound())
}

func TestReset(t *testing.T) {
	vm, _ := newTestVM(t, 0x6142, 0xA300, 0xF155, 0xD015)
	runN(t, vm, 4)

	vm.Reset()

	regs := vm.Registers()
	assert.Equal(t, uint16(0x200), regs.PC)
	assert.Equal(t, byte(0), regs.V[1])
	assert.Equal(t, 0, vm.Frame().Lit())
	assert.Equal(t, int64(0), vm.Cycles())

	b, err := vm.Memory().Read(0x301)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestLoadProgramTooLarge(t *testing.T) {
	vm := New(DefaultConfig(), WithLogger(log.NewTestLogger(t)))

	err := vm.LoadProgram(make([]byte, 0xE01))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	assert.NoError(t, vm.LoadProgram(make([]byte, 0xE00)))
}

func TestLoadProgramTwice(t *testing.T) {
	vm, _ := newTestVM(t, 0x6142, 0x6243)
	assert.NoError(t, vm.LoadProgram(assemble(0x6311)))

	b, err := vm.Memory().Slice(0x200, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x63, 0x11, 0x00, 0x00}, b)
}

func TestLoadProgramFailureKeepsState(t *testing.T) {
	vm, _ := newTestVM(t, 0x6142, 0x6243)
	runN(t, vm, 1)

	err := vm.LoadProgram(make([]byte, 0xE01))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	b, err := vm.Memory().Slice(0x200, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x61, 0x42, 0x62, 0x43}, b)

	font, err := vm.Memory().Slice(0x050, GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}, font)

	regs := vm.Registers()
	assert.Equal(t, uint16(0x202), regs.PC)
	assert.Equal(t, byte(0x42), regs.V[1])

	// the old program keeps running
	runN(t, vm, 1)
	assert.Equal(t, byte(0x43), vm.Registers().V[2])

	vm.Reset()
	b, err = vm.Memory().Slice(0x200, 4)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x61, 0x42, 0x62, 0x43}, b)
}

func TestLoadProgramInvalidLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MemorySize = 0x100

	vm := New(cfg, WithLogger(log.NewTestLogger(t)))
	err := vm.LoadProgram(assemble(0x00E0))
	assert.True(t, errors.Is(err, ErrInvalidLayout))
}
