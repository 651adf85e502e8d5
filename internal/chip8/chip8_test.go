package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type fixedRand uint32

func (f fixedRand) Uint32() uint32 { return uint32(f) }

// newTestVM returns a VM with words loaded as big-endian opcodes at ProgramStart.
func newTestVM(t *testing.T, cfg Config, words ...uint16) *VM {
	t.Helper()
	rom := make([]byte, 0, len(words)*2)
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	vm := NewVM(cfg)
	assert.NoError(t, vm.LoadProgram(rom))
	return vm
}

func tick(t *testing.T, vm *VM, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, vm.Tick())
	}
}

func TestNewVM(t *testing.T) {
	vm := NewVM(Config{})
	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, FontSet[:], vm.memory[FontBase:FontBase+len(FontSet)])
}

func TestLoadProgramTooLarge(t *testing.T) {
	vm := NewVM(Config{})
	err := vm.LoadProgram(make([]byte, MaxProgramSize+1))
	assert.Equal(t, true, errors.Is(err, ErrProgramTooLarge))
	assert.NoError(t, vm.LoadProgram(make([]byte, MaxProgramSize)))
}

func TestFetchDoesNotMutate(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x1234)
	inst, err := vm.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, Instruction(Jump{Target: 0x234}), inst)
	assert.Equal(t, uint16(ProgramStart), vm.PC())
}

func TestClearThenJumpToSelf(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x00E0, 0x1200)
	vm.display.Clear(true)

	tick(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, Frame{}, vm.Frame())

	tick(t, vm, 1)
	assert.Equal(t, uint16(0x200), vm.PC())

	// the loop keeps running without error
	tick(t, vm, 10)
	assert.Equal(t, uint16(0x200), vm.PC())
}

func TestArithmeticFlags(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		vx, vy byte
		result byte
		flag   byte
	}{
		{"add carry", 0x8014, 250, 10, 4, 1},
		{"add no carry", 0x8014, 10, 20, 30, 0},
		{"add exactly 255", 0x8014, 200, 55, 255, 0},
		{"sub no borrow", 0x8015, 5, 3, 2, 1},
		{"sub borrow", 0x8015, 3, 5, 254, 0},
		{"sub equal", 0x8015, 5, 5, 0, 0},
		{"subn no borrow", 0x8017, 3, 5, 2, 1},
		{"subn borrow", 0x8017, 5, 3, 254, 0},
		{"or", 0x8011, 0xF0, 0x0F, 0xFF, 0x77},
		{"and", 0x8012, 0xF3, 0x3F, 0x33, 0x77},
		{"xor", 0x8013, 0xFF, 0x0F, 0xF0, 0x77},
		{"copy", 0x8010, 0x00, 0x42, 0x42, 0x77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Config{}, tt.op)
			vm.v[0] = tt.vx
			vm.v[1] = tt.vy
			vm.v[FlagRegister] = 0x77
			tick(t, vm, 1)
			assert.Equal(t, tt.result, vm.V(0))
			assert.Equal(t, tt.flag, vm.V(FlagRegister))
			assert.Equal(t, uint16(0x202), vm.PC())
		})
	}
}

func TestArithmeticIntoFlagRegister(t *testing.T) {
	// ADD VF, V1: the sum lands in VF after the carry is written
	vm := newTestVM(t, Config{}, 0x8F14)
	vm.v[FlagRegister] = 200
	vm.v[1] = 100
	tick(t, vm, 1)
	assert.Equal(t, byte(44), vm.V(FlagRegister))
}

func TestAddImmediateLeavesFlag(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x7101)
	vm.v[1] = 0xFF
	vm.v[FlagRegister] = 7
	tick(t, vm, 1)
	assert.Equal(t, byte(0), vm.V(1))
	assert.Equal(t, byte(7), vm.V(FlagRegister))
}

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		legacy bool
		op     uint16
		v1, v2 byte
		result byte
		flag   byte
	}{
		{"modern shr uses vy", false, 0x8126, 0x00, 0x83, 0x41, 1},
		{"modern shr even", false, 0x8126, 0xFF, 0x82, 0x41, 0},
		{"legacy shr uses vx", true, 0x8126, 0x03, 0xF0, 0x01, 1},
		{"modern shl uses vy", false, 0x812E, 0x00, 0x81, 0x02, 1},
		{"legacy shl uses vx", true, 0x812E, 0x41, 0x00, 0x82, 1},
		// VF takes the low bit on left shifts too, so a set high bit is not reported
		{"shl captures low bit", false, 0x812E, 0x00, 0x80, 0x00, 0},
		{"legacy shl captures low bit", true, 0x812E, 0xC0, 0x00, 0x80, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Config{LegacyShift: tt.legacy}, tt.op)
			vm.v[1] = tt.v1
			vm.v[2] = tt.v2
			tick(t, vm, 1)
			assert.Equal(t, tt.result, vm.V(1))
			assert.Equal(t, tt.flag, vm.V(FlagRegister))
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		op     uint16
		v1, v2 byte
		pc     uint16
	}{
		{"se imm taken", 0x3142, 0x42, 0, 0x204},
		{"se imm not taken", 0x3142, 0x41, 0, 0x202},
		{"sne imm taken", 0x4142, 0x41, 0, 0x204},
		{"sne imm not taken", 0x4142, 0x42, 0, 0x202},
		{"se reg taken", 0x5120, 9, 9, 0x204},
		{"se reg not taken", 0x5120, 9, 8, 0x202},
		{"sne reg taken", 0x9120, 9, 8, 0x204},
		{"sne reg not taken", 0x9120, 9, 9, 0x202},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Config{}, tt.op)
			vm.v[1] = tt.v1
			vm.v[2] = tt.v2
			tick(t, vm, 1)
			assert.Equal(t, tt.pc, vm.PC())
		})
	}
}

func TestSkipOnKey(t *testing.T) {
	tests := []struct {
		name string
		op   uint16
		down bool
		pc   uint16
	}{
		{"skp down", 0xE19E, true, 0x204},
		{"skp up", 0xE19E, false, 0x202},
		{"sknp down", 0xE1A1, true, 0x202},
		{"sknp up", 0xE1A1, false, 0x204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestVM(t, Config{}, tt.op)
			vm.v[1] = 0xC
			vm.SetKey(0xC, tt.down)
			tick(t, vm, 1)
			assert.Equal(t, tt.pc, vm.PC())
		})
	}
}

func TestJumpOffset(t *testing.T) {
	vm := newTestVM(t, Config{Chip48Jump: true}, 0xB2F0)
	vm.v[0] = 0x20
	vm.v[2] = 0x10
	tick(t, vm, 1)
	assert.Equal(t, uint16(0x300), vm.PC())

	vm = newTestVM(t, Config{Chip48Jump: false}, 0xB2F0)
	vm.v[0] = 0x20
	vm.v[2] = 0x10
	tick(t, vm, 1)
	assert.Equal(t, uint16(0x310), vm.PC())

	// the sum is not truncated to a byte
	vm = newTestVM(t, Config{}, 0xB300)
	vm.v[0] = 0xFF
	tick(t, vm, 1)
	assert.Equal(t, uint16(0x3FF), vm.PC())
}

func TestCallAndReturn(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x2206, 0x1202, 0x0000, 0x00EE)
	tick(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC())
	assert.Equal(t, 1, vm.stack.Len())

	tick(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC())
	assert.Equal(t, 0, vm.stack.Len())
}

func TestCallOverflowLeavesState(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x2200)
	tick(t, vm, StackSize)
	assert.Equal(t, StackSize, vm.stack.Len())

	err := vm.Tick()
	assert.Equal(t, true, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, StackSize, vm.stack.Len())
}

func TestReturnUnderflowLeavesState(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x00EE)
	err := vm.Tick()
	assert.Equal(t, true, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), vm.PC())
}

func TestUnsupportedInstruction(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xFFFF)
	vm.v[3] = 9
	before := *vm

	err := vm.Tick()
	assert.Equal(t, true, errors.Is(err, ErrUnsupportedInstruction))
	var decodeErr *DecodeError
	assert.Equal(t, true, errors.As(err, &decodeErr))
	assert.Equal(t, uint16(0xFFFF), decodeErr.Raw)

	assert.Equal(t, before.pc, vm.pc)
	assert.Equal(t, before.v, vm.v)
	assert.Equal(t, before.memory, vm.memory)
}

func TestWaitKeyParks(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xF30A)
	vm.v[3] = 7
	vm.SetKey(6, true)

	tick(t, vm, 5)
	assert.Equal(t, uint16(0x200), vm.PC())
	assert.Equal(t, byte(7), vm.V(3))

	vm.SetKey(7, true)
	tick(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestSetIndexAndAddIndex(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xAFFE, 0xF01E)
	vm.v[0] = 3
	tick(t, vm, 2)
	assert.Equal(t, uint16(0x1001), vm.I())
	assert.Equal(t, byte(1), vm.V(FlagRegister))

	vm = newTestVM(t, Config{}, 0xA100, 0xF01E)
	vm.v[0] = 1
	vm.v[FlagRegister] = 1
	tick(t, vm, 2)
	assert.Equal(t, uint16(0x101), vm.I())
	assert.Equal(t, byte(0), vm.V(FlagRegister))
}

func TestRandomMasks(t *testing.T) {
	vm := newTestVM(t, Config{Rand: fixedRand(0xABCD)}, 0xC50F, 0xC6F0)
	tick(t, vm, 2)
	assert.Equal(t, byte(0x0D), vm.V(5))
	assert.Equal(t, byte(0xC0), vm.V(6))
}

func TestTimers(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xF015, 0xF118, 0xF207)
	vm.v[0] = 3
	vm.v[1] = 1
	tick(t, vm, 2)
	assert.Equal(t, byte(3), vm.DelayTimer())
	assert.Equal(t, byte(1), vm.SoundTimer())

	vm.DecrementTimers()
	vm.DecrementTimers()
	assert.Equal(t, byte(1), vm.DelayTimer())
	assert.Equal(t, byte(0), vm.SoundTimer())

	tick(t, vm, 1)
	assert.Equal(t, byte(1), vm.V(2))
}

func TestFontChar(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xF029)
	vm.v[0] = 0x1B
	tick(t, vm, 1)
	assert.Equal(t, uint16(0xB*GlyphSize), vm.I())
}

func TestBCD(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xA300, 0xF033)
	vm.v[0] = 254
	tick(t, vm, 2)
	assert.Equal(t, []byte{2, 5, 4}, vm.memory[0x300:0x303])
}

func TestStoreAndLoadRegisters(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xA300, 0xF355, 0xF265)
	vm.v = [RegisterCount]byte{1, 2, 3, 4, 5}

	tick(t, vm, 2)
	assert.Equal(t, []byte{1, 2, 3, 4, 0}, vm.memory[0x300:0x305])
	assert.Equal(t, uint16(0x300), vm.I())

	vm.v = [RegisterCount]byte{}
	tick(t, vm, 1)
	assert.Equal(t, [RegisterCount]byte{1, 2, 3}, vm.v)
}

func TestOutOfRangeMemoryPanics(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xAFFE, 0xF033)
	tick(t, vm, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for BCD store past end of memory")
		}
		assert.Equal(t, byte(0), vm.memory[0xFFE])
		assert.Equal(t, byte(0), vm.memory[0xFFF])
	}()
	_ = vm.Tick()
}

func TestDrawCollision(t *testing.T) {
	// glyph "0" at I=0, drawn twice at the same spot
	vm := newTestVM(t, Config{}, 0xA000, 0xD015, 0xD015)
	vm.v[FlagRegister] = 1
	tick(t, vm, 2)

	assert.Equal(t, byte(0), vm.V(FlagRegister))
	frame := vm.Frame()
	assert.Equal(t, true, frame[0][0])
	assert.Equal(t, true, frame[0][3])
	assert.Equal(t, false, frame[0][4])
	assert.Equal(t, false, frame[1][1])
	assert.Equal(t, true, frame[4][3])

	tick(t, vm, 1)
	assert.Equal(t, byte(1), vm.V(FlagRegister))
	assert.Equal(t, Frame{}, vm.Frame())
}

func TestDrawWithoutCollisionOverlap(t *testing.T) {
	// second sprite only turns pixels on, so no collision is reported
	vm := newTestVM(t, Config{}, 0xA300, 0xD011, 0xA301, 0xD011)
	vm.memory[0x300] = 0xF0
	vm.memory[0x301] = 0x0F
	tick(t, vm, 4)
	assert.Equal(t, byte(0), vm.V(FlagRegister))
	for x := 0; x < 8; x++ {
		assert.Equal(t, true, vm.Frame()[0][x])
	}
}

func TestDrawWrapsPerPixel(t *testing.T) {
	vm := newTestVM(t, Config{}, 0xA300, 0xD012)
	vm.memory[0x300] = 0xFF
	vm.memory[0x301] = 0x81
	vm.v[0] = 62 + DisplayWidth // origin is taken modulo the width
	vm.v[1] = 31
	tick(t, vm, 2)

	frame := vm.Frame()
	// row 0 lands on y=31, x=62..63 then wraps to 0..5
	assert.Equal(t, true, frame[31][62])
	assert.Equal(t, true, frame[31][63])
	assert.Equal(t, true, frame[31][0])
	assert.Equal(t, true, frame[31][5])
	assert.Equal(t, false, frame[31][6])
	// row 1 wraps to y=0, only the outer bits are set
	assert.Equal(t, true, frame[0][62])
	assert.Equal(t, false, frame[0][63])
	assert.Equal(t, true, frame[0][5])
	assert.Equal(t, false, frame[0][4])
	assert.Equal(t, byte(0), vm.V(FlagRegister))
}

func TestDrawFromFlagRegister(t *testing.T) {
	// the origin is read before VF is cleared
	vm := newTestVM(t, Config{}, 0xA300, 0xDF01)
	vm.memory[0x300] = 0x80
	vm.v[FlagRegister] = 10
	vm.v[0] = 4
	tick(t, vm, 2)
	assert.Equal(t, true, vm.Frame()[4][10])
}

func TestDump(t *testing.T) {
	vm := newTestVM(t, Config{}, 0x6A42)
	tick(t, vm, 1)
	dump := vm.Dump()
	assert.Equal(t, true, len(dump) > 0)
	assert.Equal(t, "pc: 0x202", dump[:9])
}
