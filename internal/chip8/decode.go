package chip8

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOpcode is matched by every *DecodeError.
var ErrUnsupportedOpcode = errors.New("unsupported opcode")

// DecodeError is returned by Decode for words that do not map to any instruction.
type DecodeError struct {
	Raw uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unsupported opcode: %04X", e.Raw)
}

// Unwrap lets errors.Is(err, ErrUnsupportedOpcode) match.
func (e *DecodeError) Unwrap() error {
	return ErrUnsupportedOpcode
}

// Decode maps a 16-bit word onto exactly one instruction or a *DecodeError.
//
// Operand fields follow the usual layout: x is bits 8-11, y is bits 4-7,
// n is bits 0-3, kk is the low byte and nnn the low 12 bits.
func Decode(op uint16) (Instruction, error) {
	x := uint8((op & 0x0F00) >> 8)
	y := uint8((op & 0x00F0) >> 4)
	n := uint8(op & 0x000F)
	kk := byte(op & 0x00FF)
	nnn := op & 0x0FFF

	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0:
			return ClearDisplay{}, nil
		case 0x00EE:
			return Return{}, nil
		}
	case 0x1000:
		return Jump{Target: nnn}, nil
	case 0x2000:
		return Call{Target: nnn}, nil
	case 0x3000:
		return SkipEqualImm{X: x, Value: kk}, nil
	case 0x4000:
		return SkipNotEqualImm{X: x, Value: kk}, nil
	case 0x5000:
		return SkipEqualReg{X: x, Y: y}, nil
	case 0x6000:
		return SetImm{X: x, Value: kk}, nil
	case 0x7000:
		return AddImm{X: x, Value: kk}, nil
	case 0x8000:
		switch n {
		case 0x0:
			return Copy{X: x, Y: y}, nil
		case 0x1:
			return Or{X: x, Y: y}, nil
		case 0x2:
			return And{X: x, Y: y}, nil
		case 0x3:
			return Xor{X: x, Y: y}, nil
		case 0x4:
			return AddCarry{X: x, Y: y}, nil
		case 0x5:
			return SubBorrow{X: x, Y: y}, nil
		case 0x6:
			return ShiftRight{X: x, Y: y}, nil
		case 0x7:
			return SubReverse{X: x, Y: y}, nil
		case 0xE:
			return ShiftLeft{X: x, Y: y}, nil
		}
	case 0x9000:
		return SkipNotEqualReg{X: x, Y: y}, nil
	case 0xA000:
		return SetIndex{Addr: nnn}, nil
	case 0xB000:
		return JumpOffset{X: x, Offset: nnn}, nil
	case 0xC000:
		return Random{X: x, Mask: kk}, nil
	case 0xD000:
		return Draw{X: x, Y: y, Height: n}, nil
	case 0xE000:
		switch kk {
		case 0x9E:
			return SkipKeyDown{X: x}, nil
		case 0xA1:
			return SkipKeyUp{X: x}, nil
		}
	case 0xF000:
		switch kk {
		case 0x07:
			return LoadDelay{X: x}, nil
		case 0x0A:
			return WaitKey{X: x}, nil
		case 0x15:
			return SetDelay{X: x}, nil
		case 0x18:
			return SetSound{X: x}, nil
		case 0x1E:
			return AddIndex{X: x}, nil
		case 0x29:
			return FontChar{X: x}, nil
		case 0x33:
			return BCD{X: x}, nil
		case 0x55:
			return StoreRegs{X: x}, nil
		case 0x65:
			return LoadRegs{X: x}, nil
		}
	}
	return nil, &DecodeError{Raw: op}
}
