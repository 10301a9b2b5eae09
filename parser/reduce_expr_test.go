package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solparse/ast"
	"solparse/grammar"
	"solparse/token"
)

func parseExpr(t *testing.T, expr string) ast.Expression {
	t.Helper()
	unit := parseUnit(t, `contract C { function f() public { return `+expr+`; } }`)
	fn, ok := firstContract(t, unit).Children[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	require.NotEmpty(t, fn.Body.Statements)
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	require.NotNil(t, ret.Expression)
	return ret.Expression
}

func TestReduceIdentifierExpression(t *testing.T) {
	ident, ok := parseExpr(t, `owner`).(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "owner", ident.Name)
}

func TestReduceBooleanLiterals(t *testing.T) {
	lit, ok := parseExpr(t, `true`).(*ast.BooleanLiteral)
	require.True(t, ok)
	assert.True(t, lit.Value)

	lit, ok = parseExpr(t, `false`).(*ast.BooleanLiteral)
	require.True(t, ok)
	assert.False(t, lit.Value)
}

func TestReduceNumberLiterals(t *testing.T) {
	num, ok := parseExpr(t, `42`).(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "42", num.Number)
	assert.Nil(t, num.Subdenomination)

	num, ok = parseExpr(t, `0xdeadbeef`).(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "0xdeadbeef", num.Number)

	num, ok = parseExpr(t, `1 ether`).(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, "1", num.Number)
	require.NotNil(t, num.Subdenomination)
	assert.Equal(t, "ether", *num.Subdenomination)
}

func TestReduceStringLiteral(t *testing.T) {
	lit, ok := parseExpr(t, `"hello"`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hello", lit.Value)
	assert.Equal(t, []string{"hello"}, lit.Parts)
	assert.Equal(t, []bool{false}, lit.IsUnicode)
}

func TestReduceStringLiteralQuoteEscapes(t *testing.T) {
	// Only the escape matching the fragment's own quote style is
	// resolved.
	lit, ok := parseExpr(t, `'it\'s'`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, `it's`, lit.Value)

	lit, ok = parseExpr(t, `"say \"hi\""`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, `say "hi"`, lit.Value)

	lit, ok = parseExpr(t, `"keep \n raw"`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, `keep \n raw`, lit.Value)
}

func TestReduceAdjacentStringFragments(t *testing.T) {
	lit, ok := parseExpr(t, `"hello " "world"`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "hello world", lit.Value)
	assert.Equal(t, []string{"hello ", "world"}, lit.Parts)
	assert.Equal(t, []bool{false, false}, lit.IsUnicode)
}

func TestReduceUnicodeStringLiteral(t *testing.T) {
	lit, ok := parseExpr(t, `unicode"héllo"`).(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "héllo", lit.Value)
	assert.Equal(t, []bool{true}, lit.IsUnicode)
}

func TestReduceHexLiteralFragments(t *testing.T) {
	lit, ok := parseExpr(t, `hex"deadbeef"`).(*ast.HexLiteral)
	require.True(t, ok)
	assert.Equal(t, "deadbeef", lit.Value)
	assert.Equal(t, []string{"deadbeef"}, lit.Parts)

	lit, ok = parseExpr(t, `hex"dead" hex"beef"`).(*ast.HexLiteral)
	require.True(t, ok)
	assert.Equal(t, "deadbeef", lit.Value)
	assert.Equal(t, []string{"dead", "beef"}, lit.Parts)
}

func TestReducePrefixUnaryOperators(t *testing.T) {
	for _, op := range []string{"!", "-", "~", "++", "--"} {
		un, ok := parseExpr(t, op+`x`).(*ast.UnaryOperation)
		require.True(t, ok, "operator %q", op)
		assert.Equal(t, op, un.Operator)
		assert.True(t, un.IsPrefix)
		_, ok = un.SubExpression.(*ast.Identifier)
		assert.True(t, ok)
	}
}

func TestReducePostfixUnaryOperators(t *testing.T) {
	for _, op := range []string{"++", "--"} {
		un, ok := parseExpr(t, `i`+op).(*ast.UnaryOperation)
		require.True(t, ok, "operator %q", op)
		assert.Equal(t, op, un.Operator)
		assert.False(t, un.IsPrefix)
	}
}

func TestReduceBinaryOperators(t *testing.T) {
	for _, op := range []string{"+", "-", "*", "/", "%", "**", "==", "!=", "<", ">=", "&&", "||", "&", "|", "^", "<<", ">>"} {
		bin, ok := parseExpr(t, `a `+op+` b`).(*ast.BinaryOperation)
		require.True(t, ok, "operator %q", op)
		assert.Equal(t, op, bin.Operator)
		assert.Equal(t, "a", bin.Left.(*ast.Identifier).Name)
		assert.Equal(t, "b", bin.Right.(*ast.Identifier).Name)
	}
}

func TestReduceAssignmentOperators(t *testing.T) {
	unit := parseUnit(t, `contract C { function f() public { x += 1; } }`)
	fn := firstContract(t, unit).Children[0].(*ast.FunctionDefinition)
	stmt, ok := fn.Body.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok)

	bin, ok := stmt.Expression.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, "+=", bin.Operator)
}

func TestReduceConditional(t *testing.T) {
	cond, ok := parseExpr(t, `ok ? a : b`).(*ast.Conditional)
	require.True(t, ok)
	assert.Equal(t, "ok", cond.Condition.(*ast.Identifier).Name)
	assert.Equal(t, "a", cond.TrueExpression.(*ast.Identifier).Name)
	assert.Equal(t, "b", cond.FalseExpression.(*ast.Identifier).Name)
}

func TestReduceMemberAccess(t *testing.T) {
	member, ok := parseExpr(t, `msg.sender`).(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "sender", member.MemberName)
	assert.Equal(t, "msg", member.Expression.(*ast.Identifier).Name)

	chained, ok := parseExpr(t, `a.b.c`).(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "c", chained.MemberName)
	inner, ok := chained.Expression.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "b", inner.MemberName)
}

func TestReduceIndexAccess(t *testing.T) {
	idx, ok := parseExpr(t, `balances[owner]`).(*ast.IndexAccess)
	require.True(t, ok)
	assert.Equal(t, "balances", idx.Base.(*ast.Identifier).Name)
	assert.Equal(t, "owner", idx.Index.(*ast.Identifier).Name)
}

func TestReduceIndexRangeAccessForms(t *testing.T) {
	full, ok := parseExpr(t, `data[1:2]`).(*ast.IndexRangeAccess)
	require.True(t, ok)
	assert.Equal(t, "1", full.IndexStart.(*ast.NumberLiteral).Number)
	assert.Equal(t, "2", full.IndexEnd.(*ast.NumberLiteral).Number)

	startOnly, ok := parseExpr(t, `data[1:]`).(*ast.IndexRangeAccess)
	require.True(t, ok)
	assert.Equal(t, "1", startOnly.IndexStart.(*ast.NumberLiteral).Number)
	assert.Nil(t, startOnly.IndexEnd)

	endOnly, ok := parseExpr(t, `data[:2]`).(*ast.IndexRangeAccess)
	require.True(t, ok)
	assert.Nil(t, endOnly.IndexStart)
	assert.Equal(t, "2", endOnly.IndexEnd.(*ast.NumberLiteral).Number)

	open, ok := parseExpr(t, `data[:]`).(*ast.IndexRangeAccess)
	require.True(t, ok)
	assert.Nil(t, open.IndexStart)
	assert.Nil(t, open.IndexEnd)
}

func TestReduceFunctionCallNoArguments(t *testing.T) {
	call, ok := parseExpr(t, `f()`).(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "f", call.Expression.(*ast.Identifier).Name)
	assert.NotNil(t, call.Arguments)
	assert.Empty(t, call.Arguments)
	assert.NotNil(t, call.Names)
	assert.Empty(t, call.Names)
	assert.NotNil(t, call.Identifiers)
	assert.Empty(t, call.Identifiers)
}

func TestReduceFunctionCallPositionalArguments(t *testing.T) {
	call, ok := parseExpr(t, `f(1, x)`).(*ast.FunctionCall)
	require.True(t, ok)
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, "1", call.Arguments[0].(*ast.NumberLiteral).Number)
	assert.Equal(t, "x", call.Arguments[1].(*ast.Identifier).Name)
	assert.Empty(t, call.Names)
}

func TestReduceFunctionCallNamedArguments(t *testing.T) {
	call, ok := parseExpr(t, `f({value: 1, gas: 2})`).(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, []string{"value", "gas"}, call.Names)
	require.Len(t, call.Identifiers, 2)
	assert.Equal(t, "value", call.Identifiers[0].Name)
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, "1", call.Arguments[0].(*ast.NumberLiteral).Number)
	assert.Equal(t, "2", call.Arguments[1].(*ast.NumberLiteral).Number)
}

func TestReduceCallOptions(t *testing.T) {
	call, ok := parseExpr(t, `f{value: 1}(2)`).(*ast.FunctionCall)
	require.True(t, ok)
	require.Len(t, call.Arguments, 1)
	assert.Equal(t, "2", call.Arguments[0].(*ast.NumberLiteral).Number)

	nve, ok := call.Expression.(*ast.NameValueExpression)
	require.True(t, ok)
	assert.Equal(t, "f", nve.Expression.(*ast.Identifier).Name)
	require.NotNil(t, nve.Arguments)
	assert.Equal(t, []string{"value"}, nve.Arguments.Names)
	require.Len(t, nve.Arguments.Arguments, 1)
	assert.Equal(t, "1", nve.Arguments.Arguments[0].(*ast.NumberLiteral).Number)
}

func TestReduceNewExpression(t *testing.T) {
	call, ok := parseExpr(t, `new Token()`).(*ast.FunctionCall)
	require.True(t, ok)
	newExpr, ok := call.Expression.(*ast.NewExpression)
	require.True(t, ok)
	udt, ok := newExpr.TypeName.(*ast.UserDefinedTypeName)
	require.True(t, ok)
	assert.Equal(t, "Token", udt.NamePath)

	call, ok = parseExpr(t, `new uint256[](3)`).(*ast.FunctionCall)
	require.True(t, ok)
	newExpr, ok = call.Expression.(*ast.NewExpression)
	require.True(t, ok)
	arr, ok := newExpr.TypeName.(*ast.ArrayTypeName)
	require.True(t, ok)
	assert.Equal(t, "uint256", arr.BaseTypeName.(*ast.ElementaryTypeName).Name)
	assert.Nil(t, arr.Length)
}

func TestReduceParenthesizedExpression(t *testing.T) {
	tuple, ok := parseExpr(t, `(a + b)`).(*ast.TupleExpression)
	require.True(t, ok)
	assert.False(t, tuple.IsArray)
	require.Len(t, tuple.Components, 1)
	_, ok = tuple.Components[0].(*ast.BinaryOperation)
	assert.True(t, ok)
}

func TestReduceTupleExpression(t *testing.T) {
	tuple, ok := parseExpr(t, `(1, 2)`).(*ast.TupleExpression)
	require.True(t, ok)
	assert.False(t, tuple.IsArray)
	require.Len(t, tuple.Components, 2)
	assert.Equal(t, "1", tuple.Components[0].(*ast.NumberLiteral).Number)
	assert.Equal(t, "2", tuple.Components[1].(*ast.NumberLiteral).Number)
}

func TestReduceArrayLiteral(t *testing.T) {
	arr, ok := parseExpr(t, `[1, 2, 3]`).(*ast.TupleExpression)
	require.True(t, ok)
	assert.True(t, arr.IsArray)
	assert.Len(t, arr.Components, 3)
}

func TestReduceTupleKeepsElidedSlots(t *testing.T) {
	unit := parseUnit(t, `contract C { function f() public { (, a) = g(); } }`)
	fn := firstContract(t, unit).Children[0].(*ast.FunctionDefinition)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)

	assign, ok := stmt.Expression.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, "=", assign.Operator)

	tuple, ok := assign.Left.(*ast.TupleExpression)
	require.True(t, ok)
	require.Len(t, tuple.Components, 2)
	assert.Nil(t, tuple.Components[0])
	assert.Equal(t, "a", tuple.Components[1].(*ast.Identifier).Name)
}

func TestReduceElementaryTypeCast(t *testing.T) {
	call, ok := parseExpr(t, `uint256(x)`).(*ast.FunctionCall)
	require.True(t, ok)
	typ, ok := call.Expression.(*ast.ElementaryTypeName)
	require.True(t, ok)
	assert.Equal(t, "uint256", typ.Name)
}

func TestReducePayableCallReadsAsIdentifier(t *testing.T) {
	call, ok := parseExpr(t, `payable(addr)`).(*ast.FunctionCall)
	require.True(t, ok)
	ident, ok := call.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "payable", ident.Name)
}

func TestReduceTypeKeywordCall(t *testing.T) {
	member, ok := parseExpr(t, `type(C).creationCode`).(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "creationCode", member.MemberName)

	call, ok := member.Expression.(*ast.FunctionCall)
	require.True(t, ok)
	ident, ok := call.Expression.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "type", ident.Name)
}

// --- dispatch table edge cases over hand-built tree shapes ---

func punct(value string, column int) *grammar.Node {
	return grammar.NewTerminal(&token.Token{
		Type:  token.PUNCTUATOR,
		Value: value,
		Pos:   token.Position{Offset: column, Line: 1, Column: column},
	})
}

func leafExpr(name string, column int) *grammar.Node {
	ident := grammar.NewTerminal(&token.Token{
		Type:  token.IDENT,
		Value: name,
		Pos:   token.Position{Offset: column, Line: 1, Column: column},
	})
	return grammar.NewNode(grammar.RuleExpression,
		grammar.NewNode(grammar.RulePrimaryExpression,
			grammar.NewNode(grammar.RuleIdentifier, ident)))
}

func TestDispatchRejectsMissingExpression(t *testing.T) {
	r := newReducer(DefaultOptions())
	_, err := r.reduceExpression(nil)
	require.Error(t, err)
	assert.Equal(t, "missing expression", err.Error())
}

func TestDispatchRejectsUnknownBinaryToken(t *testing.T) {
	r := newReducer(DefaultOptions())
	cst := grammar.NewNode(grammar.RuleExpression,
		leafExpr("a", 0), punct("@", 2), leafExpr("b", 4))

	_, err := r.reduceExpression(cst)
	require.Error(t, err)

	rerr, ok := err.(*ReductionError)
	require.True(t, ok)
	assert.Equal(t, "Unrecognized expression", rerr.Message)
	assert.Equal(t, 1, rerr.Line)
	assert.Equal(t, 0, rerr.Column)
}

func TestDispatchRejectsUnknownPrefixToken(t *testing.T) {
	r := newReducer(DefaultOptions())
	cst := grammar.NewNode(grammar.RuleExpression, punct("@", 0), leafExpr("a", 1))

	_, err := r.reduceExpression(cst)
	require.Error(t, err)
	assert.IsType(t, &ReductionError{}, err)
}

func TestDispatchRejectsOversizedShape(t *testing.T) {
	r := newReducer(DefaultOptions())
	cst := grammar.NewNode(grammar.RuleExpression,
		leafExpr("a", 0), punct("[", 1), leafExpr("b", 2), punct(":", 3),
		leafExpr("c", 4), punct(":", 5), punct("]", 6))

	_, err := r.reduceExpression(cst)
	require.Error(t, err)

	rerr, ok := err.(*ReductionError)
	require.True(t, ok)
	assert.Equal(t, "Unrecognized expression", rerr.Message)
}

func TestDispatchRejectsMismatchedTernaryTokens(t *testing.T) {
	r := newReducer(DefaultOptions())
	// Five children but the fixed-offset tokens do not spell a ternary
	// or a slice.
	cst := grammar.NewNode(grammar.RuleExpression,
		leafExpr("a", 0), punct("?", 1), leafExpr("b", 2), punct("?", 3), leafExpr("c", 4))

	_, err := r.reduceExpression(cst)
	require.Error(t, err)
	assert.IsType(t, &ReductionError{}, err)
}

func TestReduceRejectsUnknownProduction(t *testing.T) {
	r := newReducer(DefaultOptions())
	_, err := r.reduce(grammar.NewNode(grammar.Rule("bogus")))
	require.Error(t, err)
	assert.Equal(t, `unknown production "bogus"`, err.Error())
}
