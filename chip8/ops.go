package chip8

/// execute a decoded instruction.
///
func (vm *CHIP_8) execute(op Op, inst Instruction) error {
	a := inst.Addr()
	b := inst.Byte()
	n := inst.N()
	x := inst.X()
	y := inst.Y()

	switch op {
	case OpCLS:
		vm.cls()
	case OpRET:
		return vm.ret()
	case OpSYS:
		vm.sys(a)
	case OpJP:
		vm.jump(a)
	case OpCALL:
		return vm.call(a)
	case OpSE:
		vm.skipIf(x, b)
	case OpSNE:
		vm.skipIfNot(x, b)
	case OpSEXY:
		vm.skipIfXY(x, y)
	case OpLD:
		vm.loadX(x, b)
	case OpADD:
		vm.addX(x, b)
	case OpLDXY:
		vm.loadXY(x, y)
	case OpOR:
		vm.or(x, y)
	case OpAND:
		vm.and(x, y)
	case OpXOR:
		vm.xor(x, y)
	case OpADDXY:
		vm.addXY(x, y)
	case OpSUB:
		vm.subXY(x, y)
	case OpSHR:
		vm.shr(x)
	case OpSUBN:
		vm.subYX(x, y)
	case OpSHL:
		vm.shl(x)
	case OpSNEXY:
		vm.skipIfNotXY(x, y)
	case OpLDI:
		vm.loadI(a)
	case OpJPV0:
		vm.jumpV0(a)
	case OpRND:
		vm.rnd(x, b)
	case OpDRW:
		return vm.drw(x, y, n)
	case OpSKP:
		vm.skipIfPressed(x)
	case OpSKNP:
		vm.skipIfNotPressed(x)
	case OpLDXDT:
		vm.loadXDT(x)
	case OpLDXK:
		vm.loadXK(x)
	case OpLDDTX:
		vm.loadDTX(x)
	case OpLDSTX:
		vm.loadSTX(x)
	case OpADDIX:
		vm.addIX(x)
	case OpLDF:
		vm.loadF(x)
	case OpLDB:
		return vm.loadB(x)
	case OpSTORE:
		return vm.saveRegs(x)
	case OpLOAD:
		return vm.loadRegs(x)
	}

	return nil
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.video.Clear()
}

/// system call a machine code routine; ignored by modern interpreters.
///
func (vm *CHIP_8) sys(address uint16) {}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) error {
	if err := vm.stack.Push(vm.pc); err != nil {
		return err
	}

	vm.pc = address
	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	pc, err := vm.stack.Pop()
	if err != nil {
		return err
	}

	vm.pc = pc
	return nil
}

/// jump to address.
///
func (vm *CHIP_8) jump(address uint16) {
	vm.pc = address
}

/// jump to address + v0.
///
func (vm *CHIP_8) jumpV0(address uint16) {
	vm.pc = (address + uint16(vm.v[0])) & 0xFFF
}

/// skip next instruction if vx == n.
///
func (vm *CHIP_8) skipIf(x, b byte) {
	if vm.v[x] == b {
		vm.pc += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *CHIP_8) skipIfNot(x, b byte) {
	if vm.v[x] != b {
		vm.pc += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *CHIP_8) skipIfXY(x, y byte) {
	if vm.v[x] == vm.v[y] {
		vm.pc += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *CHIP_8) skipIfNotXY(x, y byte) {
	if vm.v[x] != vm.v[y] {
		vm.pc += 2
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *CHIP_8) skipIfPressed(x byte) {
	if vm.keys[vm.v[x]&0xF] {
		vm.pc += 2
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *CHIP_8) skipIfNotPressed(x byte) {
	if !vm.keys[vm.v[x]&0xF] {
		vm.pc += 2
	}
}

/// load n into vx.
///
func (vm *CHIP_8) loadX(x, b byte) {
	vm.v[x] = b
}

/// load y into vx.
///
func (vm *CHIP_8) loadXY(x, y byte) {
	vm.v[x] = vm.v[y]
}

/// load delay timer into vx.
///
func (vm *CHIP_8) loadXDT(x byte) {
	vm.v[x] = vm.dt.Value()
}

/// load vx into delay timer.
///
func (vm *CHIP_8) loadDTX(x byte) {
	vm.dt.Set(vm.v[x])
}

/// load vx into sound timer.
///
func (vm *CHIP_8) loadSTX(x byte) {
	vm.st.Set(vm.v[x])
}

/// load vx with next key hit (blocking).
///
func (vm *CHIP_8) loadXK(x byte) {
	vm.wait = int(x)
}

/// load address register.
///
func (vm *CHIP_8) loadI(address uint16) {
	vm.i = address
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x byte) error {
	dst, err := vm.mem.Slice(vm.i, 3)
	if err != nil {
		return err
	}

	n := vm.v[x]

	dst[0] = n / 100
	dst[1] = n / 10 % 10
	dst[2] = n % 10

	return nil
}

/// load font sprite for vx into I.
///
func (vm *CHIP_8) loadF(x byte) {
	vm.i = vm.mem.Glyph(vm.v[x])
}

/// or vx with vy into vx.
///
func (vm *CHIP_8) or(x, y byte) {
	vm.v[x] |= vm.v[y]
}

/// and vx with vy into vx.
///
func (vm *CHIP_8) and(x, y byte) {
	vm.v[x] &= vm.v[y]
}

/// xor vx with vy into vx.
///
func (vm *CHIP_8) xor(x, y byte) {
	vm.v[x] ^= vm.v[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *CHIP_8) shl(x byte) {
	carry := vm.v[x] >> 7
	vm.v[x] = byte(uint16(vm.v[x]) << 1 & 0xFF)
	vm.v[0xF] = carry
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *CHIP_8) shr(x byte) {
	carry := vm.v[x] & 1
	vm.v[x] >>= 1
	vm.v[0xF] = carry
}

/// add n to vx, wrapping; the carry flag is untouched.
///
func (vm *CHIP_8) addX(x, b byte) {
	sum := uint16(vm.v[x]) + uint16(b)
	vm.v[x] = byte(sum & 0xFF)
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y byte) {
	sum := uint16(vm.v[x]) + uint16(vm.v[y])

	carry := byte(0)
	if sum > 0xFF {
		carry = 1
	}

	vm.v[x] = byte(sum & 0xFF)
	vm.v[0xF] = carry
}

/// add vx to i.
///
func (vm *CHIP_8) addIX(x byte) {
	vm.i += uint16(vm.v[x])
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y byte) {
	vm.sub(x, vm.v[x], vm.v[y])
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *CHIP_8) subYX(x, y byte) {
	vm.sub(x, vm.v[y], vm.v[x])
}

/// sub stores a - b in vx and the no-borrow flag in vf.
///
func (vm *CHIP_8) sub(x, a, b byte) {
	carry := byte(0)
	if a >= b {
		carry = 1
	}

	// widen so the borrow wraps explicitly
	diff := (uint16(a) | 0x100) - uint16(b)

	vm.v[x] = byte(diff & 0xFF)
	vm.v[0xF] = carry
}

/// load a random number & n into vx.
///
func (vm *CHIP_8) rnd(x, b byte) {
	vm.v[x] = byte(vm.rng.Intn(0x100)) & b
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *CHIP_8) drw(x, y, n byte) error {
	sprite, err := vm.mem.Slice(vm.i, int(n))
	if err != nil {
		return err
	}

	vm.v[0xF] = vm.video.DrawSprite(int(vm.v[x]), int(vm.v[y]), sprite)
	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x byte) error {
	dst, err := vm.mem.Slice(vm.i, int(x)+1)
	if err != nil {
		return err
	}

	copy(dst, vm.v[:x+1])
	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x byte) error {
	src, err := vm.mem.Slice(vm.i, int(x)+1)
	if err != nil {
		return err
	}

	copy(vm.v[:x+1], src)
	return nil
}
