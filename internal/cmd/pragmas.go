package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"solparse/ast"
	"solparse/parser"
	"solparse/semver"
)

// pragmasCmd represents the pragmas command.
var pragmasCmd = &cobra.Command{
	Use:   "pragmas [flags] source_file",
	Short: "List a file's pragma directives and check them against a compiler version.",
	Long: `List a file's pragma directives. With --solc, every solidity
	version pragma is evaluated against the given compiler version and
	the command fails if any constraint rejects it.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		opts := loadOptions(cmd)
		opts.Tolerant = true
		opts.Tokens = false

		result, err := parser.ParseFile(args[0], opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
			os.Exit(1)
		}

		pragmas := collectPragmas(result.AST)
		if len(pragmas) == 0 {
			fmt.Println("no pragma directives")
			return
		}

		solc := getString(cmd, "solc")
		ok := true
		for _, pragma := range pragmas {
			fmt.Printf("pragma %s %s;\n", pragma.Name, pragma.Value)
			if solc == "" || pragma.Name != "solidity" {
				continue
			}
			if !checkConstraint(pragma.Value, solc) {
				ok = false
			}
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(pragmasCmd)
	pragmasCmd.Flags().String("solc", "", "compiler version to check solidity pragmas against")
}

// collectPragmas gathers every pragma directive in the unit, nested
// ones included.
func collectPragmas(unit *ast.SourceUnit) []*ast.PragmaDirective {
	var pragmas []*ast.PragmaDirective
	if unit == nil {
		return pragmas
	}
	ast.Walk(unit, func(n ast.Node) bool {
		if pragma, ok := n.(*ast.PragmaDirective); ok {
			pragmas = append(pragmas, pragma)
		}
		return true
	}, nil)
	return pragmas
}

// checkConstraint evaluates one solidity version constraint against a
// compiler version, reporting the verdict on the spot.
func checkConstraint(constraint, solc string) bool {
	version, err := semver.ParseVersion(solc)
	if err != nil {
		color.Red("  invalid compiler version %q: %v", solc, err)
		return false
	}
	c, err := semver.Parse(constraint)
	if err != nil {
		color.Red("  unrecognized constraint %q: %v", constraint, err)
		return false
	}
	if !c.Matches(version) {
		color.Red("  not satisfied by solc %s", solc)
		return false
	}
	color.Green("  satisfied by solc %s", solc)
	return true
}
