package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	reporting "solparse/internal/errors"
	"solparse/parser"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [flags] source_files...",
	Short: "Parse files and report syntax errors without printing an AST.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		opts := loadOptions(cmd)
		opts.Tolerant = true
		opts.Tokens = false

		start := time.Now()
		failed := 0
		for _, path := range args {
			if !checkFile(path, opts) {
				failed++
			}
		}

		elapsed := formatDuration(time.Since(start))
		if failed > 0 {
			color.Red("%d of %d file(s) failed after %s", failed, len(args), elapsed)
			os.Exit(1)
		}
		color.Green("Successfully checked %d file(s) in %s", len(args), elapsed)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkFile(path string, opts parser.Options) bool {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	result, err := parser.Parse(string(source), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}
	if result.HasErrors() {
		reporter := reporting.NewReporter(path, string(source))
		fmt.Fprint(os.Stderr, reporter.FormatAll(result.Errors))
		return false
	}

	log.Debugf("%s: %d top-level declaration(s)", path, len(result.AST.Children))
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
