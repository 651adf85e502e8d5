package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd returns the callers installed chipvm version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Retrieve the currently installed chipvm version",
	Long:  "Run `chipvm version` to get your current chipvm version",
	Args:  cobra.NoArgs,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), currentReleaseVersion)
}
