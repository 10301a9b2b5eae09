package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solparse/repl"
)

// replCmd represents the repl command.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Explore Solidity snippets interactively.",
	Run: func(cmd *cobra.Command, args []string) {
		opts := loadOptions(cmd)
		if err := repl.Run(opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
