package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	reporting "solparse/internal/errors"
	"solparse/parser"
)

// parseCmd represents the parse command.
var parseCmd = &cobra.Command{
	Use:   "parse [flags] source_file",
	Short: "Parse a Solidity file and print its AST as JSON.",
	Long: `Parse a Solidity file and print its AST as JSON.
	By default the parse is tolerant: syntax errors are reported on
	stderr and attached to the tree's errors field. With --strict any
	syntax error fails the parse instead.`,
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
		if getFlag(cmd, "tokens") {
			opts.Tokens = true
		}
		if getFlag(cmd, "strict") {
			opts.Tolerant = false
		}

		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
			os.Exit(1)
		}

		result, err := parser.Parse(string(source), opts)
		if err != nil {
			reportParseFailure(path, string(source), err)
			os.Exit(1)
		}
		if result.HasErrors() {
			reporter := reporting.NewReporter(path, string(source))
			fmt.Fprint(os.Stderr, reporter.FormatAll(result.Errors))
		}

		out, err := marshalResult(result, !getFlag(cmd, "compact"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode AST: %v\n", err)
			os.Exit(1)
		}
		if err := writeOutput(getString(cmd, "output"), out); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("no-loc", false, "omit line/column locations from nodes")
	parseCmd.Flags().Bool("no-range", false, "omit byte-offset ranges from nodes")
	parseCmd.Flags().Bool("tokens", false, "include the token list in the output")
	parseCmd.Flags().Bool("strict", false, "fail on the first syntax error instead of attaching diagnostics")
	parseCmd.Flags().Bool("compact", false, "emit unindented JSON")
	parseCmd.Flags().StringP("output", "o", "", "write JSON to a file instead of stdout")
}

func marshalResult(result *parser.ParseResult, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

func writeOutput(path string, data []byte) error {
	data = append(data, '\n')
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Debugf("wrote %d bytes to %s", len(data), path)
	return nil
}

// reportParseFailure renders a failed parse: strict-mode syntax errors
// as caret frames, anything else as a plain message.
func reportParseFailure(path, source string, err error) {
	var parseErr *parser.ParserError
	if errors.As(err, &parseErr) {
		reporter := reporting.NewReporter(path, source)
		fmt.Fprint(os.Stderr, reporter.FormatAll(parseErr.Errors))
		color.New(color.FgRed).Fprintf(os.Stderr, "parsing failed: %d syntax error(s)\n", len(parseErr.Errors))
		return
	}
	fmt.Fprintf(os.Stderr, "parsing failed: %v\n", err)
}
