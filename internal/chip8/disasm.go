package chip8

import (
	"fmt"
	"io"
)

// Disassemble writes one line per 16-bit word of rom, labelled with the
// address the word would occupy when loaded at base. Words that do not
// decode are emitted as .word directives. A trailing odd byte is emitted
// as .byte.
func Disassemble(w io.Writer, rom []byte, base uint16) error {
	for off := 0; off+1 < len(rom); off += instructionSize {
		op := uint16(rom[off])<<8 | uint16(rom[off+1])
		text := fmt.Sprintf(".word 0x%04X", op)
		if inst, err := Decode(op); err == nil {
			text = inst.String()
		}
		if _, err := fmt.Fprintf(w, "%03X: %04X  %s\n", int(base)+off, op, text); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	if len(rom)%2 == 1 {
		last := len(rom) - 1
		if _, err := fmt.Fprintf(w, "%03X: %02X    .byte 0x%02X\n", int(base)+last, rom[last], rom[last]); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}
	return nil
}
