package parser

import (
	"strings"

	"solparse/ast"
	"solparse/grammar"
)

// reducer folds a concrete parse tree into the typed AST, bottom-up,
// one method per grammar production. A reducer serves a single parse:
// it carries the metadata options and the remaining recursion budget,
// and is discarded afterwards.
type reducer struct {
	opts  Options
	depth int
}

func newReducer(opts Options) *reducer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultOptions().MaxDepth
	}
	return &reducer{opts: opts}
}

// descend charges one level against the depth budget. The recursive
// reducers (expressions, statements, type names, assembly) call it on
// entry so pathological nesting surfaces as a ReductionError instead
// of a stack overflow.
func (r *reducer) descend(cst *grammar.Node) error {
	r.depth++
	if r.depth > r.opts.MaxDepth {
		return reductionErr(cst, "max reduction depth exceeded")
	}
	return nil
}

func (r *reducer) ascend() {
	r.depth--
}

// meta computes loc and range for the subtree rooted at cst, honoring
// the Loc and Range options. The end position is the position of the
// stop token itself, and byte offsets are inclusive on both sides.
func (r *reducer) meta(cst *grammar.Node) (*ast.Location, *ast.Range) {
	start := cst.StartToken()
	if start == nil {
		return nil, nil
	}
	stop := cst.StopToken()
	if stop == nil {
		stop = start
	}
	var loc *ast.Location
	if r.opts.Loc {
		loc = &ast.Location{
			Start: ast.Position{Line: start.Pos.Line, Column: start.Pos.Column},
			End:   ast.Position{Line: stop.Pos.Line, Column: stop.Pos.Column},
		}
	}
	var rng *ast.Range
	if r.opts.Range {
		rng = &ast.Range{start.Pos.Offset, stop.EndOffset()}
	}
	return loc, rng
}

// finish stamps the node's kind and source metadata from cst.
func (r *reducer) finish(n ast.Node, cst *grammar.Node) {
	loc, rng := r.meta(cst)
	ast.Attach(n, loc, rng)
}

// tokenAt returns the literal text of the i-th child when that child
// is a terminal, and "" otherwise. Shape dispatch compares these
// against fixed spellings, so out-of-range and non-terminal children
// must read as empty rather than panic.
func tokenAt(cst *grammar.Node, i int) string {
	if cst == nil {
		return ""
	}
	child := cst.Child(i)
	if child == nil || child.Tok == nil {
		return ""
	}
	return child.Tok.Value
}

func strp(s string) *string { return &s }

// unquote strips the first and last character of a token's text.
// String tokens keep their quotes in the token value, and the scanner
// emits a best-effort token even for unterminated strings, so this
// slices blindly instead of validating.
func unquote(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}

// reduce dispatches any node-producing rule to its reducer. Carrier
// productions (parameter lists, modifier lists, pragma payloads) are
// consumed structurally by their parents and never reach this switch.
func (r *reducer) reduce(cst *grammar.Node) (ast.Node, error) {
	switch cst.Rule {
	case grammar.RuleSourceUnit:
		return r.reduceSourceUnit(cst)
	case grammar.RulePragmaDirective:
		return r.reducePragmaDirective(cst), nil
	case grammar.RuleImportDirective:
		return r.reduceImportDirective(cst)
	case grammar.RuleContractDefinition:
		return r.reduceContractDefinition(cst)
	case grammar.RuleContractPart:
		return r.reduceContractPart(cst, "")
	case grammar.RuleStateVariableDeclaration:
		return r.reduceStateVariableDeclaration(cst)
	case grammar.RuleFileLevelConstant:
		return r.reduceFileLevelConstant(cst)
	case grammar.RuleCustomErrorDefinition:
		return r.reduceCustomErrorDefinition(cst)
	case grammar.RuleTypeDefinition:
		return r.reduceTypeDefinition(cst)
	case grammar.RuleUsingForDeclaration:
		return r.reduceUsingForDeclaration(cst)
	case grammar.RuleStructDefinition:
		return r.reduceStructDefinition(cst)
	case grammar.RuleModifierDefinition:
		return r.reduceModifierDefinition(cst)
	case grammar.RuleModifierInvocation:
		return r.reduceModifierInvocation(cst)
	case grammar.RuleFunctionDefinition:
		return r.reduceFunctionDefinition(cst, "")
	case grammar.RuleEventDefinition:
		return r.reduceEventDefinition(cst)
	case grammar.RuleEnumDefinition:
		return r.reduceEnumDefinition(cst)
	case grammar.RuleEnumValue:
		return r.reduceEnumValue(cst), nil
	case grammar.RuleParameter:
		return r.reduceParameter(cst)
	case grammar.RuleEventParameter:
		return r.reduceEventParameter(cst)
	case grammar.RuleFunctionTypeParameter:
		return r.reduceFunctionTypeParameter(cst)
	case grammar.RuleVariableDeclaration:
		return r.reduceVariableDeclaration(cst)
	case grammar.RuleTypeName, grammar.RuleElementaryTypeName, grammar.RuleUserDefinedTypeName,
		grammar.RuleMapping, grammar.RuleFunctionTypeName:
		return r.reduceAnyTypeName(cst)
	case grammar.RuleBlock:
		return r.reduceBlock(cst)
	case grammar.RuleStatement:
		return r.reduceStatement(cst)
	case grammar.RuleSimpleStatement:
		return r.reduceSimpleStatement(cst)
	case grammar.RuleExpressionStatement:
		return r.reduceExpressionStatement(cst)
	case grammar.RuleIfStatement:
		return r.reduceIfStatement(cst)
	case grammar.RuleTryStatement:
		return r.reduceTryStatement(cst)
	case grammar.RuleCatchClause:
		return r.reduceCatchClause(cst)
	case grammar.RuleWhileStatement:
		return r.reduceWhileStatement(cst)
	case grammar.RuleDoWhileStatement:
		return r.reduceDoWhileStatement(cst)
	case grammar.RuleForStatement:
		return r.reduceForStatement(cst)
	case grammar.RuleContinueStatement:
		return r.reduceContinueStatement(cst), nil
	case grammar.RuleBreakStatement:
		return r.reduceBreakStatement(cst), nil
	case grammar.RuleReturnStatement:
		return r.reduceReturnStatement(cst)
	case grammar.RuleThrowStatement:
		return r.reduceThrowStatement(cst), nil
	case grammar.RuleEmitStatement:
		return r.reduceEmitStatement(cst)
	case grammar.RuleRevertStatement:
		return r.reduceRevertStatement(cst)
	case grammar.RuleUncheckedStatement:
		return r.reduceUncheckedStatement(cst)
	case grammar.RuleVariableDeclarationStatement:
		return r.reduceVariableDeclarationStatement(cst)
	case grammar.RuleInlineAssemblyStatement:
		return r.reduceInlineAssemblyStatement(cst)
	case grammar.RuleExpression:
		return r.reduceExpression(cst)
	case grammar.RulePrimaryExpression:
		return r.reducePrimaryExpression(cst)
	case grammar.RuleTupleExpression:
		return r.reduceTupleExpression(cst)
	case grammar.RuleFunctionCall:
		return r.reduceCallShape(cst)
	case grammar.RuleNameValueList:
		return r.reduceNameValueList(cst)
	case grammar.RuleIdentifier:
		return r.reduceIdentifier(cst), nil
	case grammar.RuleNumberLiteral:
		return r.reduceNumberLiteral(cst), nil
	case grammar.RuleStringLiteral:
		return r.reduceStringLiteral(cst), nil
	case grammar.RuleHexLiteral:
		return r.reduceHexLiteral(cst), nil
	case grammar.RuleAssemblyBlock, grammar.RuleAssemblyItem, grammar.RuleAssemblyExpression,
		grammar.RuleAssemblyMember, grammar.RuleAssemblyCall, grammar.RuleAssemblyLocalDefinition,
		grammar.RuleAssemblyAssignment, grammar.RuleAssemblyStackAssignment,
		grammar.RuleLabelDefinition, grammar.RuleAssemblySwitch, grammar.RuleAssemblyCase,
		grammar.RuleAssemblyFunctionDefinition, grammar.RuleAssemblyFor, grammar.RuleAssemblyIf,
		grammar.RuleAssemblyLiteral:
		return r.reduceAssemblyItem(cst)
	}
	return nil, reductionErr(cst, "unknown production %q", cst.Rule)
}

// reduceSourceUnit reduces every top-level declaration in order. The
// builder appends the end-of-input terminal as the last child; error
// recovery may leave other stray terminals, which are skipped the same
// way.
func (r *reducer) reduceSourceUnit(cst *grammar.Node) (*ast.SourceUnit, error) {
	children := []ast.Node{}
	for _, child := range cst.Children {
		if child.IsTerminal() {
			continue
		}
		node, err := r.reduce(child)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	n := &ast.SourceUnit{Children: children}
	r.finish(n, cst)
	return n, nil
}

// reducePragmaDirective keeps the directive textual: the name is the
// pragma identifier and the value is the raw payload. For a solidity
// version pragma the payload is the constraint list joined with single
// spaces, so `pragma solidity >=0.6.0   <0.8.0;` reads ">=0.6.0 <0.8.0"
// regardless of source spacing.
func (r *reducer) reducePragmaDirective(cst *grammar.Node) *ast.PragmaDirective {
	name := cst.First(grammar.RulePragmaName).Text()

	value := ""
	if valueNode := cst.First(grammar.RulePragmaValue); valueNode != nil {
		value = valueNode.Text()
		if version := valueNode.First(grammar.RuleVersion); version != nil {
			parts := make([]string, 0, version.Count())
			for _, part := range version.Children {
				parts = append(parts, part.Text())
			}
			value = strings.Join(parts, " ")
		}
	}

	n := &ast.PragmaDirective{Name: name, Value: value}
	r.finish(n, cst)
	return n
}

// reduceImportDirective distinguishes the four import forms by the
// directive's direct identifier count and the presence of symbol-alias
// declarations. The stored path has its quotes stripped but no escape
// processing applied.
func (r *reducer) reduceImportDirective(cst *grammar.Node) (*ast.ImportDirective, error) {
	pathNode := cst.First(grammar.RuleImportPath)
	if pathNode == nil {
		return nil, reductionErr(cst, "import directive has no path")
	}
	path := unquote(pathNode.Text())
	pathLiteral := &ast.StringLiteral{
		Value:     path,
		Parts:     []string{path},
		IsUnicode: []bool{false},
	}
	r.finish(pathLiteral, pathNode)

	var unitAlias *string
	var unitAliasIdentifier *ast.Identifier
	var symbolAliases [][2]*string
	var symbolAliasesIdentifiers [][2]*ast.Identifier

	if decls := cst.All(grammar.RuleImportDeclaration); len(decls) > 0 {
		symbolAliases = make([][2]*string, 0, len(decls))
		symbolAliasesIdentifiers = make([][2]*ast.Identifier, 0, len(decls))
		for _, decl := range decls {
			declIDs := decl.All(grammar.RuleIdentifier)
			if len(declIDs) == 0 {
				return nil, reductionErr(decl, "import declaration has no symbol")
			}
			symbol := strp(declIDs[0].Text())
			symbolIdentifier := r.reduceIdentifier(declIDs[0])
			var alias *string
			var aliasIdentifier *ast.Identifier
			if len(declIDs) > 1 {
				alias = strp(declIDs[1].Text())
				aliasIdentifier = r.reduceIdentifier(declIDs[1])
			}
			symbolAliases = append(symbolAliases, [2]*string{symbol, alias})
			symbolAliasesIdentifiers = append(symbolAliasesIdentifiers, [2]*ast.Identifier{symbolIdentifier, aliasIdentifier})
		}
	} else {
		ids := cst.All(grammar.RuleIdentifier)
		switch len(ids) {
		case 0:
		case 1:
			unitAlias = strp(ids[0].Text())
			unitAliasIdentifier = r.reduceIdentifier(ids[0])
		case 2:
			// `import foo as bar from "path"`: the alias is second.
			unitAlias = strp(ids[1].Text())
			unitAliasIdentifier = r.reduceIdentifier(ids[1])
		default:
			return nil, reductionErr(cst, "an import should have one or two identifiers")
		}
	}

	n := &ast.ImportDirective{
		Path:                     path,
		PathLiteral:              pathLiteral,
		UnitAlias:                unitAlias,
		UnitAliasIdentifier:      unitAliasIdentifier,
		SymbolAliases:            symbolAliases,
		SymbolAliasesIdentifiers: symbolAliasesIdentifiers,
	}
	r.finish(n, cst)
	return n, nil
}
