package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"solparse/parser"
)

// tokensCmd represents the tokens command.
var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] source_file",
	Short: "Scan a Solidity file and print its token list as JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		opts := loadOptions(cmd)
		if getFlag(cmd, "no-loc") {
			opts.Loc = false
		}
		if getFlag(cmd, "no-range") {
			opts.Range = false
		}
		if getFlag(cmd, "strict") {
			opts.Tolerant = false
		}

		source, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
			os.Exit(1)
		}

		tokens, err := parser.Tokenize(string(source), opts)
		if err != nil {
			reportParseFailure(args[0], string(source), err)
			os.Exit(1)
		}

		out, err := json.MarshalIndent(tokens, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode tokens: %v\n", err)
			os.Exit(1)
		}
		if err := writeOutput(getString(cmd, "output"), out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().Bool("no-loc", false, "omit line/column locations from tokens")
	tokensCmd.Flags().Bool("no-range", false, "omit byte-offset ranges from tokens")
	tokensCmd.Flags().Bool("strict", false, "fail on lexical errors")
	tokensCmd.Flags().StringP("output", "o", "", "write JSON to a file instead of stdout")
}
