package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing
// via "go install".
var Version string

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Report the version of this executable.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print("solparse ")
		if Version != "" {
			// Built via "make"
			fmt.Print(Version)
		} else if info, ok := debug.ReadBuildInfo(); ok {
			// Built via "go install"
			fmt.Print(info.Main.Version)
		} else {
			// Unknown, perhaps "go run"
			fmt.Print("(unknown version)")
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
