package chip8

import "fmt"

// Instruction is one decoded opcode. The set of implementations is closed;
// every type below is produced by Decode and nothing else.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// ClearDisplay is 00E0.
type ClearDisplay struct{}

// Return is 00EE.
type Return struct{}

// Jump is 1NNN.
type Jump struct{ Target uint16 }

// Call is 2NNN.
type Call struct{ Target uint16 }

// SkipEqualImm is 3XKK.
type SkipEqualImm struct {
	X     uint8
	Value byte
}

// SkipNotEqualImm is 4XKK.
type SkipNotEqualImm struct {
	X     uint8
	Value byte
}

// SkipEqualReg is 5XY0.
type SkipEqualReg struct{ X, Y uint8 }

// SetImm is 6XKK.
type SetImm struct {
	X     uint8
	Value byte
}

// AddImm is 7XKK. It never touches VF.
type AddImm struct {
	X     uint8
	Value byte
}

// Copy is 8XY0.
type Copy struct{ X, Y uint8 }

// Or is 8XY1.
type Or struct{ X, Y uint8 }

// And is 8XY2.
type And struct{ X, Y uint8 }

// Xor is 8XY3.
type Xor struct{ X, Y uint8 }

// AddCarry is 8XY4.
type AddCarry struct{ X, Y uint8 }

// SubBorrow is 8XY5.
type SubBorrow struct{ X, Y uint8 }

// ShiftRight is 8XY6.
type ShiftRight struct{ X, Y uint8 }

// SubReverse is 8XY7.
type SubReverse struct{ X, Y uint8 }

// ShiftLeft is 8XYE.
type ShiftLeft struct{ X, Y uint8 }

// SkipNotEqualReg is 9XY0.
type SkipNotEqualReg struct{ X, Y uint8 }

// SetIndex is ANNN.
type SetIndex struct{ Addr uint16 }

// JumpOffset is BNNN. X is only honoured in CHIP-48 mode, otherwise V0 is used.
type JumpOffset struct {
	X      uint8
	Offset uint16
}

// Random is CXKK.
type Random struct {
	X    uint8
	Mask byte
}

// Draw is DXYN.
type Draw struct {
	X, Y   uint8
	Height uint8
}

// SkipKeyDown is EX9E.
type SkipKeyDown struct{ X uint8 }

// SkipKeyUp is EXA1.
type SkipKeyUp struct{ X uint8 }

// LoadDelay is FX07.
type LoadDelay struct{ X uint8 }

// WaitKey is FX0A.
type WaitKey struct{ X uint8 }

// SetDelay is FX15.
type SetDelay struct{ X uint8 }

// SetSound is FX18.
type SetSound struct{ X uint8 }

// AddIndex is FX1E.
type AddIndex struct{ X uint8 }

// FontChar is FX29.
type FontChar struct{ X uint8 }

// BCD is FX33.
type BCD struct{ X uint8 }

// StoreRegs is FX55.
type StoreRegs struct{ X uint8 }

// LoadRegs is FX65.
type LoadRegs struct{ X uint8 }

func (ClearDisplay) instruction()    {}
func (Return) instruction()          {}
func (Jump) instruction()            {}
func (Call) instruction()            {}
func (SkipEqualImm) instruction()    {}
func (SkipNotEqualImm) instruction() {}
func (SkipEqualReg) instruction()    {}
func (SetImm) instruction()          {}
func (AddImm) instruction()          {}
func (Copy) instruction()            {}
func (Or) instruction()              {}
func (And) instruction()             {}
func (Xor) instruction()             {}
func (AddCarry) instruction()        {}
func (SubBorrow) instruction()       {}
func (ShiftRight) instruction()      {}
func (SubReverse) instruction()      {}
func (ShiftLeft) instruction()       {}
func (SkipNotEqualReg) instruction() {}
func (SetIndex) instruction()        {}
func (JumpOffset) instruction()      {}
func (Random) instruction()          {}
func (Draw) instruction()            {}
func (SkipKeyDown) instruction()     {}
func (SkipKeyUp) instruction()       {}
func (LoadDelay) instruction()       {}
func (WaitKey) instruction()         {}
func (SetDelay) instruction()        {}
func (SetSound) instruction()        {}
func (AddIndex) instruction()        {}
func (FontChar) instruction()        {}
func (BCD) instruction()             {}
func (StoreRegs) instruction()       {}
func (LoadRegs) instruction()        {}

// Mnemonics follow the Cowgod assembler syntax.

func (ClearDisplay) String() string      { return "CLS" }
func (Return) String() string            { return "RET" }
func (i Jump) String() string            { return fmt.Sprintf("JP 0x%03X", i.Target) }
func (i Call) String() string            { return fmt.Sprintf("CALL 0x%03X", i.Target) }
func (i SkipEqualImm) String() string    { return fmt.Sprintf("SE V%X, 0x%02X", i.X, i.Value) }
func (i SkipNotEqualImm) String() string { return fmt.Sprintf("SNE V%X, 0x%02X", i.X, i.Value) }
func (i SkipEqualReg) String() string    { return fmt.Sprintf("SE V%X, V%X", i.X, i.Y) }
func (i SetImm) String() string          { return fmt.Sprintf("LD V%X, 0x%02X", i.X, i.Value) }
func (i AddImm) String() string          { return fmt.Sprintf("ADD V%X, 0x%02X", i.X, i.Value) }
func (i Copy) String() string            { return fmt.Sprintf("LD V%X, V%X", i.X, i.Y) }
func (i Or) String() string              { return fmt.Sprintf("OR V%X, V%X", i.X, i.Y) }
func (i And) String() string             { return fmt.Sprintf("AND V%X, V%X", i.X, i.Y) }
func (i Xor) String() string             { return fmt.Sprintf("XOR V%X, V%X", i.X, i.Y) }
func (i AddCarry) String() string        { return fmt.Sprintf("ADD V%X, V%X", i.X, i.Y) }
func (i SubBorrow) String() string       { return fmt.Sprintf("SUB V%X, V%X", i.X, i.Y) }
func (i ShiftRight) String() string      { return fmt.Sprintf("SHR V%X, V%X", i.X, i.Y) }
func (i SubReverse) String() string      { return fmt.Sprintf("SUBN V%X, V%X", i.X, i.Y) }
func (i ShiftLeft) String() string       { return fmt.Sprintf("SHL V%X, V%X", i.X, i.Y) }
func (i SkipNotEqualReg) String() string { return fmt.Sprintf("SNE V%X, V%X", i.X, i.Y) }
func (i SetIndex) String() string        { return fmt.Sprintf("LD I, 0x%03X", i.Addr) }
func (i JumpOffset) String() string      { return fmt.Sprintf("JP V%X, 0x%03X", i.X, i.Offset) }
func (i Random) String() string          { return fmt.Sprintf("RND V%X, 0x%02X", i.X, i.Mask) }
func (i Draw) String() string            { return fmt.Sprintf("DRW V%X, V%X, %d", i.X, i.Y, i.Height) }
func (i SkipKeyDown) String() string     { return fmt.Sprintf("SKP V%X", i.X) }
func (i SkipKeyUp) String() string       { return fmt.Sprintf("SKNP V%X", i.X) }
func (i LoadDelay) String() string       { return fmt.Sprintf("LD V%X, DT", i.X) }
func (i WaitKey) String() string         { return fmt.Sprintf("LD V%X, K", i.X) }
func (i SetDelay) String() string        { return fmt.Sprintf("LD DT, V%X", i.X) }
func (i SetSound) String() string        { return fmt.Sprintf("LD ST, V%X", i.X) }
func (i AddIndex) String() string        { return fmt.Sprintf("ADD I, V%X", i.X) }
func (i FontChar) String() string        { return fmt.Sprintf("LD F, V%X", i.X) }
func (i BCD) String() string             { return fmt.Sprintf("LD B, V%X", i.X) }
func (i StoreRegs) String() string       { return fmt.Sprintf("LD [I], V%X", i.X) }
func (i LoadRegs) String() string        { return fmt.Sprintf("LD V%X, [I]", i.X) }
