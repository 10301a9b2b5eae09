package ast

// SourceUnit is the root of every parse: one per compilation unit.
// Children holds the top-level declarations in source order. Errors is
// populated only by tolerant parses that collected syntax errors.
type SourceUnit struct {
	base
	Children []Node       `json:"children"`
	Errors   []Diagnostic `json:"errors,omitempty"`
}

// PragmaDirective records a `pragma <name> <value>;` directive. For
// version pragmas, Value is the constraint text with single spaces
// between constraints (e.g. ">=0.6.0 <0.8.0").
// Example: `pragma solidity ^0.8.0;`
type PragmaDirective struct {
	base
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ImportDirective records an import in any of its three forms:
//
//	import "./lib.sol";
//	import "./lib.sol" as Lib;
//	import {A as B, C} from "./lib.sol";
//
// SymbolAliases holds [name, alias] pairs with a nil alias when no
// `as` clause is present; the *Identifiers fields carry the same data
// as nodes with their own source spans.
type ImportDirective struct {
	base
	Path                     string           `json:"path"`
	PathLiteral              *StringLiteral   `json:"pathLiteral"`
	UnitAlias                *string          `json:"unitAlias"`
	UnitAliasIdentifier      *Identifier      `json:"unitAliasIdentifier"`
	SymbolAliases            [][2]*string     `json:"symbolAliases"`
	SymbolAliasesIdentifiers [][2]*Identifier `json:"symbolAliasesIdentifiers"`
}

// FileLevelConstant is a constant declared outside any contract.
// Example: `uint256 constant MAX = 2**256 - 1;`
type FileLevelConstant struct {
	base
	TypeName        TypeName   `json:"typeName"`
	Name            string     `json:"name"`
	InitialValue    Expression `json:"initialValue"`
	IsDeclaredConst bool       `json:"isDeclaredConst"`
	IsImmutable     bool       `json:"isImmutable"`
}

func (*SourceUnit) NodeType() NodeType        { return KindSourceUnit }
func (*PragmaDirective) NodeType() NodeType   { return KindPragmaDirective }
func (*ImportDirective) NodeType() NodeType   { return KindImportDirective }
func (*FileLevelConstant) NodeType() NodeType { return KindFileLevelConstant }
