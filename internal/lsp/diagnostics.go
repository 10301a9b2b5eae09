package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"solparse/ast"
	"solparse/grammar"
	"solparse/parser"
	"solparse/semver"
)

// syntaxDiagnostics converts collected syntax errors to LSP
// diagnostics. Scanner positions are 1-based lines with 0-based
// columns; the protocol wants both 0-based.
func syntaxDiagnostics(errs []grammar.SyntaxError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, err := range errs {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    pointRange(err.Line, err.Column, 1),
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("solparse"),
			Message:  err.Message,
		})
	}

	return diagnostics
}

// pragmaDiagnostics flags solidity version pragmas whose constraint
// text does not parse as a version range.
func pragmaDiagnostics(unit *ast.SourceUnit) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	if unit == nil {
		return diagnostics
	}

	for _, child := range unit.Children {
		pragma, ok := child.(*ast.PragmaDirective)
		if !ok || pragma.Name != "solidity" {
			continue
		}
		if _, err := semver.Parse(pragma.Value); err != nil {
			line, column := 1, 0
			if loc := pragma.Location(); loc != nil {
				line, column = loc.Start.Line, loc.Start.Column
			}
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range:    pointRange(line, column, len(pragma.Value)),
				Severity: ptrSeverity(protocol.DiagnosticSeverityWarning),
				Source:   ptrString("solparse"),
				Message:  fmt.Sprintf("unrecognized solidity version constraint %q", pragma.Value),
			})
		}
	}

	return diagnostics
}

// reductionDiagnostic reports a reducer failure as a diagnostic so
// the editor shows something actionable instead of a dead server.
func reductionDiagnostic(err *parser.ReductionError) protocol.Diagnostic {
	line, column := err.Line, err.Column
	if line < 1 {
		line = 1
	}
	return protocol.Diagnostic{
		Range:    pointRange(line, column, 1),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("solparse"),
		Message:  err.Message,
	}
}

// pointRange spans length characters starting at a 1-based line and
// 0-based column.
func pointRange(line, column, length int) protocol.Range {
	if length < 1 {
		length = 1
	}
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(line - 1),
			Character: uint32(column),
		},
		End: protocol.Position{
			Line:      uint32(line - 1),
			Character: uint32(column + length),
		},
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
