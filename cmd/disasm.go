package cmd

import (
	"fmt"
	"os"

	"github.com/bradford-hamilton/chipvm/internal/chip8"
	"github.com/spf13/cobra"
)

// disasmCmd prints a listing of a rom without running it
var disasmCmd = &cobra.Command{
	Use:   "disasm `path/to/rom`",
	Short: "print a disassembly listing of a rom",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	if len(rom) > chip8.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, max size: %d", chip8.ErrProgramTooLarge, len(rom), chip8.MaxProgramSize)
	}
	return chip8.Disassemble(cmd.OutOrStdout(), rom, chip8.ProgramStart)
}
