// Package parser turns Solidity source text into the typed AST of the
// ast package. It drives the grammar package's scanner and parse-tree
// builder, then reduces the parse tree bottom-up, one reduction per
// grammar production. Syntax errors are collected rather than thrown;
// strict mode turns them into a ParserError, tolerant mode attaches
// them to the returned SourceUnit.
package parser

// Options controls metadata emission and error policy for a single
// parse. The zero value is a valid strict, metadata-free parse; most
// callers start from DefaultOptions.
type Options struct {
	// Loc attaches start/end line-column spans to every node.
	Loc bool
	// Range attaches inclusive byte-offset spans to every node.
	Range bool
	// Tokens retains the scanned token list on the ParseResult.
	Tokens bool
	// Tolerant collects syntax errors on the SourceUnit instead of
	// failing the parse.
	Tolerant bool
	// MaxDepth bounds reduction recursion. Exceeding it yields a
	// ReductionError instead of exhausting the stack.
	MaxDepth int
}

// DefaultOptions returns the options used by the CLI and the LSP:
// full source metadata, no token retention, tolerant error policy.
func DefaultOptions() Options {
	return Options{
		Loc:      true,
		Range:    true,
		Tokens:   false,
		Tolerant: true,
		MaxDepth: 2048,
	}
}
