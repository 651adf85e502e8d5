package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// currentReleaseVersion is used to print the version the user currently has downloaded
const currentReleaseVersion = "v0.2.0"

var debug bool

// rootCmd is the base for all commands.
var rootCmd = &cobra.Command{
	Use:           "chipvm [command]",
	Short:         "chipvm is a Chip-8 virtual machine",
	Long:          "chipvm runs and disassembles Chip-8 programs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every executed instruction (also enabled by $DEBUG)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs chipvm according to the user's command/subcommand/flags
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs warnings and above to stderr, or everything when debugging.
func newLogger() *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	if debug || os.Getenv("DEBUG") != "" {
		lvl.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}
