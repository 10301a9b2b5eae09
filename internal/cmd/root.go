// Package cmd implements the solparse command-line interface.
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"solparse/internal/config"
	"solparse/parser"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "solparse",
	Short: "A Solidity source-to-AST parser.",
	Long: `A parser toolbox for Solidity: turns source files into a typed
AST with source positions, with JSON output, token listings and pragma
version checking.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "path to a .solparse.yaml options file")
}

// loadOptions resolves the parser options for a command: built-in
// defaults, then the config file, then the command's own flags (the
// caller applies those).
func loadOptions(cmd *cobra.Command) parser.Options {
	cfg, err := config.Load(getString(cmd, "config"))
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Path != "" {
		log.Debugf("options loaded from %s", cfg.Path)
	}
	return cfg.Options
}
