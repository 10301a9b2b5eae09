// Package ast defines the typed syntax tree produced by parsing
// Solidity source text: the closed set of node kinds, their source
// metadata, and a visitor for walking finished trees.
package ast

// NodeType discriminates the closed set of AST node kinds. Every node
// in a finished tree reports one of the Kind* constants; an unknown
// kind is an implementation bug, not a runtime condition.
type NodeType string

// Node is the interface satisfied by every AST node. The metadata
// setter is unexported so the node set stays closed to this package.
type Node interface {
	NodeType() NodeType
	Location() *Location
	ByteRange() *Range

	attach(NodeType, *Location, *Range)
}

// Position is a line/column pair inside a source unit. Line is
// one-based and Column is zero-based, following the convention of the
// upstream tokenizer and of collected syntax errors.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the source span of a node. End holds the line/column of
// the node's final token, not of the character after it.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Range is the byte-offset span of a node: offsets of the first and
// last byte, both inclusive.
type Range [2]int

// Diagnostic is a collected syntax error. In tolerant mode the parser
// attaches the full list to the SourceUnit instead of failing.
type Diagnostic struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// base carries the serialized discriminant and the optional source
// metadata shared by every node type. Concrete nodes embed it.
type base struct {
	Type NodeType  `json:"type"`
	Loc  *Location `json:"loc,omitempty"`
	Rng  *Range    `json:"range,omitempty"`
}

func (b *base) Location() *Location { return b.Loc }

func (b *base) ByteRange() *Range { return b.Rng }

func (b *base) attach(t NodeType, loc *Location, rng *Range) {
	b.Type = t
	b.Loc = loc
	b.Rng = rng
}

// Attach records the node's discriminant and source metadata. The
// parser calls it exactly once per node, immediately after
// construction; nodes are not mutated afterwards. loc and rng may be
// nil when the corresponding option is disabled or the node was
// synthesized without a source span.
func Attach(n Node, loc *Location, rng *Range) Node {
	n.attach(n.NodeType(), loc, rng)
	return n
}

// Expression is the marker interface for expression nodes. Type-name
// nodes satisfy it too: a type name is a valid primary expression
// (e.g. `abi.decode(data, (uint, address))`).
type Expression interface {
	Node
	isExpr()
}

// Statement is the marker interface for statement nodes.
type Statement interface {
	Node
	isStmt()
}

// TypeName is the marker interface for type-reference nodes.
type TypeName interface {
	Node
	isTypeName()
}

// AssemblyItem is the marker interface for nodes that may appear
// inside an inline-assembly block, including the literals and
// identifiers Yul shares with the expression grammar.
type AssemblyItem interface {
	Node
	isAsmItem()
}
