package chip8

// execute applies inst and returns how far to advance the program counter.
// Instructions that set the counter themselves return 0. A returned error
// means nothing was changed.
func (vm *VM) execute(inst Instruction) (uint16, error) {
	switch in := inst.(type) {
	case ClearDisplay:
		vm.display.Clear(false)
	case Return:
		addr, err := vm.stack.Pop()
		if err != nil {
			return 0, err
		}
		vm.pc = addr
		return 0, nil
	case Jump:
		vm.pc = in.Target
		return 0, nil
	case Call:
		if err := vm.stack.Push(vm.pc + instructionSize); err != nil {
			return 0, err
		}
		vm.pc = in.Target
		return 0, nil
	case SkipEqualImm:
		return vm.skipIf(vm.v[in.X] == in.Value), nil
	case SkipNotEqualImm:
		return vm.skipIf(vm.v[in.X] != in.Value), nil
	case SkipEqualReg:
		return vm.skipIf(vm.v[in.X] == vm.v[in.Y]), nil
	case SkipNotEqualReg:
		return vm.skipIf(vm.v[in.X] != vm.v[in.Y]), nil
	case SetImm:
		vm.v[in.X] = in.Value
	case AddImm:
		vm.v[in.X] += in.Value
	case Copy:
		vm.v[in.X] = vm.v[in.Y]
	case Or:
		vm.v[in.X] |= vm.v[in.Y]
	case And:
		vm.v[in.X] &= vm.v[in.Y]
	case Xor:
		vm.v[in.X] ^= vm.v[in.Y]
	case AddCarry:
		vm.addCarry(in.X, in.Y)
	case SubBorrow:
		vm.subBorrow(in.X, vm.v[in.X], vm.v[in.Y])
	case SubReverse:
		vm.subBorrow(in.X, vm.v[in.Y], vm.v[in.X])
	case ShiftRight:
		src := vm.shiftSource(in.X, in.Y)
		vm.v[FlagRegister] = src & 0x01
		vm.v[in.X] = src >> 1
	case ShiftLeft:
		// VF gets the low bit here too, not bit 7 as on the COSMAC VIP.
		src := vm.shiftSource(in.X, in.Y)
		vm.v[FlagRegister] = src & 0x01
		vm.v[in.X] = src << 1
	case SetIndex:
		vm.i = in.Addr
	case JumpOffset:
		reg := uint8(0)
		if vm.chip48Jump {
			reg = in.X
		}
		vm.pc = uint16(vm.v[reg]) + in.Offset
		return 0, nil
	case Random:
		vm.v[in.X] = byte(vm.rand.Uint32()) & in.Mask
	case Draw:
		vm.drawSprite(vm.v[in.X], vm.v[in.Y], in.Height)
	case SkipKeyDown:
		return vm.skipIf(vm.keypad.IsDown(vm.v[in.X])), nil
	case SkipKeyUp:
		return vm.skipIf(!vm.keypad.IsDown(vm.v[in.X])), nil
	case LoadDelay:
		vm.v[in.X] = vm.delayTimer
	case SetDelay:
		vm.delayTimer = vm.v[in.X]
	case SetSound:
		vm.soundTimer = vm.v[in.X]
	case AddIndex:
		sum := uint32(vm.i) + uint32(vm.v[in.X])
		if sum > 0xFFF {
			vm.v[FlagRegister] = 1
		} else {
			vm.v[FlagRegister] = 0
		}
		vm.i = uint16(sum)
	case WaitKey:
		if !vm.keypad.IsDown(vm.v[in.X]) {
			// park on this instruction until the key is held
			return 0, nil
		}
	case FontChar:
		vm.i = FontBase + uint16(vm.v[in.X]&0xF)*GlyphSize
	case BCD:
		vm.checkRange("bcd store", vm.i, 3)
		val := vm.v[in.X]
		vm.memory[vm.i] = val / 100
		vm.memory[vm.i+1] = (val / 10) % 10
		vm.memory[vm.i+2] = val % 10
	case StoreRegs:
		vm.checkRange("register store", vm.i, int(in.X)+1)
		for ind := uint16(0); ind <= uint16(in.X); ind++ {
			vm.memory[vm.i+ind] = vm.v[ind]
		}
	case LoadRegs:
		vm.checkRange("register load", vm.i, int(in.X)+1)
		for ind := uint16(0); ind <= uint16(in.X); ind++ {
			vm.v[ind] = vm.memory[vm.i+ind]
		}
	}
	return instructionSize, nil
}

func (vm *VM) skipIf(cond bool) uint16 {
	if cond {
		return 2 * instructionSize
	}
	return instructionSize
}

// Set VF to 01 if a carry occurs
// Set VF to 00 if a carry does not occur
func (vm *VM) addCarry(x, y uint8) {
	sum := uint16(vm.v[x]) + uint16(vm.v[y])
	if sum > 0xFF {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}
	vm.v[x] = byte(sum)
}

// Stores a-b in Vx.
// Set VF to 01 if a > b (no borrow), 00 otherwise
func (vm *VM) subBorrow(x uint8, a, b byte) {
	if a > b {
		vm.v[FlagRegister] = 1
	} else {
		vm.v[FlagRegister] = 0
	}
	vm.v[x] = a - b
}

func (vm *VM) shiftSource(x, y uint8) byte {
	if vm.legacyShift {
		return vm.v[x]
	}
	return vm.v[y]
}

// drawSprite XORs height rows from memory at I onto the display at vx, vy.
// Every pixel wraps on both axes. VF is set to 01 if any set pixel is turned off.
func (vm *VM) drawSprite(vx, vy byte, height uint8) {
	vm.checkRange("sprite read", vm.i, int(height))

	x0 := int(vx) % DisplayWidth
	y0 := int(vy) % DisplayHeight
	vm.v[FlagRegister] = 0

	for row := 0; row < int(height); row++ {
		pix := vm.memory[vm.i+uint16(row)]
		py := (y0 + row) % DisplayHeight
		for col := 0; col < 8; col++ {
			if pix&(0x80>>col) == 0 {
				continue
			}
			px := (x0 + col) % DisplayWidth
			if vm.display.Get(px, py) {
				vm.v[FlagRegister] = 1
			}
			vm.display.Flip(px, py)
		}
	}
}
