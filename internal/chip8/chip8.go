package chip8

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// system memory map
// 0x000-0x04F - built in 4x5 pixel font set (0-F)
// 0x050-0x1FF - unused, historically the interpreter itself
// 0x200-0xFFF - Program ROM and work RAM

// Chip-8 used to be implemented on 4k systems like the Telmac 1800 and Cosmac VIP where the interpreter
// itself occupied the first 512 bytes of memory. Running natively there is nothing to avoid in that range,
// so the font set goes at the very bottom.

const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 4096
	// ProgramStart is where program images are loaded and execution begins.
	ProgramStart = 0x200
	// MaxProgramSize is the largest image that fits above ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart
	// RegisterCount is the number of V registers.
	RegisterCount = 16
	// FlagRegister is VF, written by carry, borrow, shift and collision.
	FlagRegister = 0xF

	instructionSize = 2
)

var (
	// ErrUnsupportedInstruction is returned by Tick when the word at PC does not decode.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrProgramTooLarge is returned when a program image does not fit in memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// RandSource supplies the bytes for the RND instruction.
type RandSource interface {
	Uint32() uint32
}

// Config holds construction-time options for a VM. The zero value is the
// modern shift behaviour with V0-based jump offsets.
type Config struct {
	// LegacyShift makes SHR/SHL shift Vx in place, ignoring Vy.
	LegacyShift bool
	// Chip48Jump makes BNNN jump to Vx+NNN instead of V0+NNN.
	Chip48Jump bool
	// Rand defaults to a time-seeded PCG generator.
	Rand RandSource
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// VM represents the chip-8 virtual machine
type VM struct {
	memory     [MemorySize]byte    // the VM's memory -> see more on this up top
	v          [RegisterCount]byte // 8-bit general purpose registers, V0 - VF
	i          uint16              // index register
	pc         uint16              // program counter
	stack      Stack               // return addresses for CALL/RET
	display    Display             // 64x32 monochrome framebuffer
	keypad     Keypad              // HEX based: 0x0-0xF
	delayTimer byte                // counts down at 60 hertz until it reaches 0
	soundTimer byte                // counts down at 60 hertz until it reaches 0, beeps while non-zero

	legacyShift bool
	chip48Jump  bool
	rand        RandSource
	log         *slog.Logger
}

// NewVM returns a VM with the font set loaded and the program counter at ProgramStart.
func NewVM(cfg Config) *VM {
	vm := &VM{
		pc:          ProgramStart,
		legacyShift: cfg.LegacyShift,
		chip48Jump:  cfg.Chip48Jump,
		rand:        cfg.Rand,
		log:         cfg.Logger,
	}
	if vm.rand == nil {
		seed := uint64(time.Now().UnixNano())
		vm.rand = rand.New(rand.NewPCG(seed, seed>>32))
	}
	if vm.log == nil {
		vm.log = slog.Default()
	}
	vm.LoadFontSet()
	return vm
}

// LoadFontSet copies the glyph table to FontBase.
func (vm *VM) LoadFontSet() {
	copy(vm.memory[FontBase:], FontSet[:])
}

// LoadProgram copies rom into memory at ProgramStart.
func (vm *VM) LoadProgram(rom []byte) error {
	if len(rom) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, max size: %d", ErrProgramTooLarge, len(rom), MaxProgramSize)
	}
	copy(vm.memory[ProgramStart:], rom)
	return nil
}

// Fetch reads the word at PC (high byte first) and decodes it. It changes nothing.
func (vm *VM) Fetch() (Instruction, error) {
	return Decode(vm.opcodeAt(vm.pc))
}

func (vm *VM) opcodeAt(addr uint16) uint16 {
	vm.checkRange("fetch", addr, 2)
	// One opcode is 2 bytes long, ex. 0xA2F0: shift the first byte left 8 and OR in the second.
	return uint16(vm.memory[addr])<<8 | uint16(vm.memory[addr+1])
}

// Tick performs one fetch-decode-execute step. On error nothing has changed.
func (vm *VM) Tick() error {
	inst, err := vm.Fetch()
	if err != nil {
		return fmt.Errorf("%w at 0x%03X: %w", ErrUnsupportedInstruction, vm.pc, err)
	}

	if vm.log.Enabled(context.Background(), slog.LevelDebug) {
		vm.log.Debug("exec",
			slog.String("pc", fmt.Sprintf("0x%03X", vm.pc)),
			slog.String("opcode", fmt.Sprintf("0x%04X", vm.opcodeAt(vm.pc))),
			slog.String("instr", inst.String()),
		)
	}

	inc, err := vm.execute(inst)
	if err != nil {
		return fmt.Errorf("%s at 0x%03X: %w", inst, vm.pc, err)
	}
	vm.pc += inc
	return nil
}

// DecrementTimers counts both timers down by one if they are non-zero.
// The host calls it at 60Hz independently of Tick.
func (vm *VM) DecrementTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// checkRange panics if [addr, addr+n) is not inside memory. Instructions
// reaching outside memory mean a broken program or loader.
func (vm *VM) checkRange(op string, addr uint16, n int) {
	if int(addr)+n > MemorySize {
		panic(fmt.Sprintf("chip8: %s of %d bytes at 0x%04X exceeds memory (pc=0x%03X)", op, n, addr, vm.pc))
	}
}

// PC returns the program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// SetPC sets the program counter.
func (vm *VM) SetPC(pc uint16) {
	vm.pc = pc
}

// I returns the index register.
func (vm *VM) I() uint16 {
	return vm.i
}

// V returns register Vx.
func (vm *VM) V(x uint8) byte {
	return vm.v[x&0xF]
}

// DelayTimer returns the current delay timer value.
func (vm *VM) DelayTimer() byte {
	return vm.delayTimer
}

// SoundTimer returns the current sound timer value.
func (vm *VM) SoundTimer() byte {
	return vm.soundTimer
}

// Frame returns a copy of the display.
func (vm *VM) Frame() Frame {
	return vm.display.Pixels()
}

// SetKey marks a hex key as down or up.
func (vm *VM) SetKey(key byte, down bool) {
	vm.keypad.Set(key, down)
}

// Dump renders the register state for diagnostics.
func (vm *VM) Dump() string {
	return fmt.Sprintf(`pc: 0x%03X
sp: %d
i: 0x%03X
dt: %d
st: %d
---Registers---
V0: %02X V1: %02X V2: %02X V3: %02X
V4: %02X V5: %02X V6: %02X V7: %02X
V8: %02X V9: %02X VA: %02X VB: %02X
VC: %02X VD: %02X VE: %02X VF: %02X`,
		vm.pc, vm.stack.Len(), vm.i, vm.delayTimer, vm.soundTimer,
		vm.v[0], vm.v[1], vm.v[2], vm.v[3],
		vm.v[4], vm.v[5], vm.v[6], vm.v[7],
		vm.v[8], vm.v[9], vm.v[10], vm.v[11],
		vm.v[12], vm.v[13], vm.v[14], vm.v[15],
	)
}
