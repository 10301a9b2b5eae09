// Package token defines the lexical token types shared by the scanner,
// the parse-tree builder and the parser's token-list output.
package token

import "fmt"

// Type classifies a scanned token. The scanner keeps the categories
// coarse; keyword and operator identity lives in the token's Value.
type Type string

const (
	ILLEGAL Type = "Illegal"
	EOF     Type = "EOF"

	// IDENT covers plain identifiers; keywords are scanned as KEYWORD
	// and re-admitted as identifiers by the builder where the grammar
	// allows it (e.g. "from" in import directives).
	IDENT   Type = "Identifier"
	KEYWORD Type = "Keyword"

	// Literals.
	NUMBER     Type = "Numeric"    // 255, 0.5, 1e10, 100_000
	HEX_NUMBER Type = "HexNumber"  // 0xdeadbeef
	STRING     Type = "String"     // "..." or '...', optionally unicode-prefixed
	HEX        Type = "HexLiteral" // hex"deadbeef"
	BOOL       Type = "Boolean"    // true, false

	// PUNCTUATOR covers delimiters and operators alike.
	PUNCTUATOR Type = "Punctuator"

	// Pragma payload tokens: `pragma solidity ^0.8.0 <0.9.0;` scans the
	// constraint part as VERSION / VERSION_OP tokens.
	VERSION    Type = "Version"
	VERSION_OP Type = "VersionOperator"
)

// Position is a location inside a source unit. Line is one-based and
// Column is zero-based, matching the convention of the diagnostics and
// of the loc metadata attached to AST nodes.
type Position struct {
	Offset int // byte offset of the first byte, starting at 0
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token. Value holds the raw source text of
// the token, quotes and prefixes included.
type Token struct {
	Type  Type
	Value string
	Pos   Position
}

// EndOffset returns the byte offset of the token's final byte,
// inclusive. Byte-offset ranges on AST nodes are [start, end] pairs of
// inclusive offsets, so a one-character token has EndOffset == Offset.
func (t *Token) EndOffset() int {
	if len(t.Value) == 0 {
		return t.Pos.Offset
	}
	return t.Pos.Offset + len(t.Value) - 1
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// Is reports whether the token has the given type and value. Most
// grammar decisions key on literal token text, so the value check is
// the common path.
func (t *Token) Is(typ Type, value string) bool {
	return t != nil && t.Type == typ && t.Value == value
}
